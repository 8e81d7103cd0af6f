package server

type DatesResponse struct {
	Results []string `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
