package schema

import (
	"encoding/json"
	"time"
)

//////////////////////////////////////////////////////////////////////////////
// TYPES

// Report is the result of analyzing one call recording
type Report struct {
	Id         string    `json:"id"`
	Filename   string    `json:"filename,omitempty"`
	Provider   string    `json:"provider,omitempty"`
	Language   string    `json:"language,omitempty"`
	Duration   Timestamp `json:"duration,omitempty"`
	Turns      []Turn    `json:"turns,omitempty"`
	Transcript string    `json:"transcript"`
	Report     string    `json:"report"`
	Created    time.Time `json:"created"`
}

//////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r *Report) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
