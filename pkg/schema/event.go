package schema

import "encoding/json"

//////////////////////////////////////////////////////////////////////////////
// TYPES

// Event is published as a call moves through the pipeline
type Event struct {
	Type string `json:"type"`
	Id   string `json:"id,omitempty"`
	Text string `json:"text,omitempty"`
}

//////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	CallReceivedType    = "call.received"
	CallTranscribedType = "call.transcribed"
	CallClassifiedType  = "call.classified"
	CallReportType      = "call.report"
	CallErrorType       = "call.error"
)

//////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (e Event) String() string {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
