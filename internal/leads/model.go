package leads

import (
	"encoding/json"
	"time"
)

// StatusNew is the initial status assigned to every stored lead.
const StatusNew = "new"

// Submission is the untrusted JSON payload posted by the web form.
// Field names follow the public form contract.
type Submission struct {
	Nombre       formText `json:"nombre"`
	Email        formText `json:"email"`
	Telefono     formText `json:"telefono"`
	Mensaje      formText `json:"mensaje"`
	CocheInteres formText `json:"coche_interes"`
	CarID        opaqueID `json:"car_id"`
	PageURL      formText `json:"page_url"`
	UserAgent    formText `json:"user_agent"`
}

// formText decodes any JSON value, yielding the empty string for
// non-string values. A field that is present but wrong-typed then fails
// validation the same way a missing field does, so callers never need to
// distinguish the two.
type formText string

func (t *formText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = formText(s)
		return nil
	}
	*t = ""
	return nil
}

// opaqueID decodes a pass-through identifier. Strings are unquoted;
// numbers and other scalars keep their literal JSON text. The value is
// never interpreted here.
type opaqueID string

func (id *opaqueID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = opaqueID(s)
		return nil
	}
	if string(b) == "null" {
		*id = ""
		return nil
	}
	*id = opaqueID(b)
	return nil
}

// Lead is a validated, normalized submission ready for persistence.
// Optional fields are nil when the submitter left them blank, so
// downstream consumers can distinguish "not provided" from "provided
// but blank".
type Lead struct {
	Nombre       string
	Email        string
	Telefono     *string
	Mensaje      string
	CocheInteres *string
	CarID        *string
	PageURL      string
	UserAgent    string
	ClientIP     string
	Status       string
}

// StoredLead identifies the row the external store created for a lead.
type StoredLead struct {
	ID        string
	CreatedAt time.Time
}
