package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Purpose classifies why a visitor is checking in.
type Purpose string

const (
	PurposeBusinessMeeting Purpose = "Business Meeting"
	PurposeInterview       Purpose = "Interview"
	PurposeDelivery        Purpose = "Delivery"
	PurposeMaintenance     Purpose = "Maintenance"
	PurposePersonalVisit   Purpose = "Personal Visit"
	PurposeOther           Purpose = "Other"
)

// Purposes lists the closed enumeration in display order.
var Purposes = []Purpose{
	PurposeBusinessMeeting,
	PurposeInterview,
	PurposeDelivery,
	PurposeMaintenance,
	PurposePersonalVisit,
	PurposeOther,
}

// Valid reports whether p is one of Purposes.
func (p Purpose) Valid() bool {
	for _, known := range Purposes {
		if p == known {
			return true
		}
	}
	return false
}

// Visitor is the canonical record every package works with.
// Backend field-name variations are resolved by WireVisitor.Normalize.
type Visitor struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Purpose    Purpose   `json:"purpose"`
	Host       string    `json:"host,omitempty"`
	Company    string    `json:"company,omitempty"`
	Message    string    `json:"message,omitempty"`
	CheckinRaw string    `json:"checkin_time"`
	Checkin    time.Time `json:"-"`
	HasCheckin bool      `json:"-"`
}

// CheckinDate returns the local calendar date (YYYY-MM-DD) of the check-in,
// or "" when the timestamp was missing or unparsable.
func (v Visitor) CheckinDate(loc *time.Location) string {
	if !v.HasCheckin {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return v.Checkin.In(loc).Format(DateLayout)
}

// DateLayout is the ISO calendar date used for filter bounds and file names.
const DateLayout = "2006-01-02"

// WireVisitor matches the JSON returned by GET /api/entries/.
// Older deployments use full_name, phone_number and entry_time.
type WireVisitor struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	PhoneNumber string          `json:"phone_number"`
	Purpose     string          `json:"purpose"`
	Host        string          `json:"host"`
	Company     string          `json:"company"`
	Message     string          `json:"message"`
	CheckinTime string          `json:"checkin_time"`
	EntryTime   string          `json:"entry_time"`
}

// Normalize resolves field-name fallbacks into a Visitor.
func (w WireVisitor) Normalize() Visitor {
	v := Visitor{
		ID:         rawID(w.ID),
		Name:       firstNonEmpty(w.Name, w.FullName),
		Email:      w.Email,
		Phone:      firstNonEmpty(w.Phone, w.PhoneNumber),
		Purpose:    Purpose(w.Purpose),
		Host:       w.Host,
		Company:    w.Company,
		Message:    w.Message,
		CheckinRaw: firstNonEmpty(w.CheckinTime, w.EntryTime),
	}
	v.Checkin, v.HasCheckin = ParseTimestamp(v.CheckinRaw)
	return v
}

// NormalizeAll converts a fetched page of wire records.
func NormalizeAll(in []WireVisitor) []Visitor {
	out := make([]Visitor, 0, len(in))
	for _, w := range in {
		out = append(out, w.Normalize())
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseTimestamp accepts RFC 3339 and naive ISO 8601 timestamps.
// Naive values are read in local time.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// VisitorPayload is the body for POST /api/entries/
type VisitorPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Host        string `json:"host,omitempty"`
	Purpose     string `json:"purpose"`
	Message     string `json:"message,omitempty"`
	CheckinTime string `json:"checkin_time"`
}

// VisitorListResponse covers the paginated envelope some backends return.
// A bare JSON array is handled by the client before this type is used.
type VisitorListResponse struct {
	Data    []WireVisitor `json:"data"`
	Results []WireVisitor `json:"results"`
	Total   int           `json:"total"`
	Count   int           `json:"count"`
	Page    int           `json:"page"`
	Pages   int           `json:"pages"`
}

// Records returns whichever list field the backend populated.
func (r VisitorListResponse) Records() []WireVisitor {
	if len(r.Data) > 0 {
		return r.Data
	}
	return r.Results
}

// PageCount is the number of pages at limit records per page. An envelope
// that reports only a record count (total or count) gets ceil(count/limit).
func (r VisitorListResponse) PageCount(limit int) int {
	if r.Pages > 0 {
		return r.Pages
	}
	n := max(r.Total, r.Count)
	if n <= 0 || limit <= 0 {
		return 1
	}
	return (n + limit - 1) / limit
}

// ListQuery carries the query parameters of GET /api/entries/.
// Zero values are omitted from the request.
type ListQuery struct {
	Search    string
	Purpose   string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}
