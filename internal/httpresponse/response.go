package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type Response struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const INTERNALERRORJSON = "{\"Status\": 500,\"Body\":{\"ErrorDescription\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

// Envelope wraps a body the same way WriteResponseWithStatus does. The
// websocket handlers send it as is.
func Envelope(status int, body any) Response {
	return Response{
		Status: status,
		Body:   body,
	}
}

func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	jsonByte, err := json.Marshal(Envelope(status, body))
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

func WriteErrorWithStatus(w http.ResponseWriter, status int, err error) {
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: err.Error()})
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}
