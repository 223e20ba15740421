package playable

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// LogMessage is a line in the game log
// If Usernames is empty, it's a general statement, otherwise the message is about those players
type LogMessage struct {
	UUID      string    `json:"uuid"`
	Usernames []string  `json:"usernames"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

// Response is a message sent to one or more clients
// Key names the event, Context echoes the Context of the command that caused it
type Response struct {
	ID      string      `json:"id"`
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// NewEvent returns a new response for the key and payload
func NewEvent(key string, data interface{}) *Response {
	return &Response{
		ID:   uuid.New().String(),
		Key:  key,
		Data: data,
	}
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		ID:    uuid.New().String(),
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// WithContext returns a copy of the response addressed to the command's context
func (r *Response) WithContext(ctx string) *Response {
	res := *r
	res.Context = ctx
	return &res
}

// NewError returns an "error" event carrying the error message
func NewError(ctx string, err error) *Response {
	res := NewEvent("error", nil)
	res.Value = err.Error()
	res.Context = ctx
	return res
}

// PayloadIn is the format we expect from the client
type PayloadIn struct {
	Action         string         `json:"action"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
// JSON numbers with a fractional part are not integers and return false
func (a AdditionalData) GetInt(key string) (int, bool) {
	floatVal, ok := a[key].(float64)
	if !ok {
		return 0, false
	}

	if floatVal != math.Trunc(floatVal) {
		return 0, false
	}

	return int(floatVal), true
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(username string, format string, a ...interface{}) *LogMessage {
	var usernames []string
	if username != "" {
		usernames = []string{username}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		Usernames: usernames,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}
