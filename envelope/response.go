package envelope

import (
	"encoding/json"
	"net/http"

	"pingpal/utils"
)

// Response is the JSON body returned by every endpoint. Status carries the
// logical result code, the HTTP transport code stays 200.
type Response struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func Make(status int, data interface{}) *Response {
	return &Response{Status: status, Data: data}
}

// NoContent reports success without a payload.
func NoContent() *Response {
	return &Response{Status: http.StatusNoContent}
}

func Invalid(message string) *Response {
	return &Response{Status: http.StatusBadRequest, Message: message}
}

func NotFound(message string) *Response {
	return &Response{Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Response {
	return &Response{Status: http.StatusConflict, Message: message}
}

// Internal wraps a store or other unexpected failure. The message is the
// underlying error text, surfaced opaque to the caller.
func Internal(err error) *Response {
	return &Response{Status: http.StatusInternalServerError, Message: err.Error()}
}

func (me *Response) Ok() bool {
	return me.Status < http.StatusBadRequest
}

func (me *Response) Encode() []byte {
	jsn, err := json.Marshal(me)
	if err != nil {
		utils.Log().Error(err, "error while marshaling Response")
	}

	return jsn
}
