package api

// Request bodies accepted by the archive server.

type consolePayload struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}

type addSingleGameRequest struct {
	Title string `json:"title"`
}

type addBulkGamesRequest struct {
	Games []string `json:"games"`
}

type updateGameRequest struct {
	Title       string `json:"title"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`
}

type fromURLRequest struct {
	URL string `json:"url"`
}

// Response envelopes. Mutating endpoints wrap their summary in a
// {"status": "ok", ...} object.

type scanResponse struct {
	Status  string `json:"status"`
	Added   int    `json:"added"`
	Errors  int    `json:"errors"`
	Skipped int    `json:"skipped"`
}

type addResponse struct {
	Status  string `json:"status"`
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type fetchResponse struct {
	Status  string `json:"status"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Title   string `json:"title"`
}

type coverResponse struct {
	Status   string `json:"status"`
	CoverURL string `json:"cover_url"`
}

type screenshotResponse struct {
	Status       string `json:"status"`
	ScreenshotID int64  `json:"screenshot_id"`
	URL          string `json:"url"`
}

type headerListResponse struct {
	Headers []string `json:"headers"`
}

type headerUploadResponse struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

type headerDeleteResponse struct {
	Status  string `json:"status"`
	Deleted bool   `json:"deleted"`
}

// errorPayload is the FastAPI error shape on non-2xx responses.
type errorPayload struct {
	Detail string `json:"detail"`
}
