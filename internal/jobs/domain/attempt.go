package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AttemptStatus records the result of one service attempt.
type AttemptStatus string

const (
	AttemptServed       AttemptStatus = "served"
	AttemptAttempted    AttemptStatus = "attempted"
	AttemptNoAnswer     AttemptStatus = "no_answer"
	AttemptBadAddress   AttemptStatus = "bad_address"
	AttemptRefused      AttemptStatus = "refused"
	AttemptUnsuccessful AttemptStatus = "unsuccessful"
)

// AttemptStatusValues lists every accepted attempt status.
func AttemptStatusValues() []string {
	return []string{
		string(AttemptServed), string(AttemptAttempted), string(AttemptNoAnswer),
		string(AttemptBadAddress), string(AttemptRefused), string(AttemptUnsuccessful),
	}
}

// PersonServed describes who accepted service.
type PersonServed struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Sex          string `json:"sex,omitempty"`
	Age          string `json:"age,omitempty"`
	Height       string `json:"height,omitempty"`
	Weight       string `json:"weight,omitempty"`
	Hair         string `json:"hair,omitempty"`
	Description  string `json:"description,omitempty"`
}

// GPS is a device fix captured at attempt time.
type GPS struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

// Attempt is one dated attempt to serve. Attempts are immutable except through explicit edit.
type Attempt struct {
	ID                uuid.UUID     `json:"id"`
	JobID             uuid.UUID     `json:"jobId"`
	Status            AttemptStatus `json:"status"`
	AttemptDate       time.Time     `json:"attemptDate"`
	ServiceTypeDetail string        `json:"serviceTypeDetail,omitempty"`
	// ServiceMethod is tagged at logging time; empty for legacy rows.
	ServiceMethod ServiceMethod `json:"serviceMethod,omitempty"`
	PersonServed  PersonServed  `json:"personServed"`
	GPS           *GPS          `json:"gps,omitempty"`
	ServerID      *uuid.UUID    `json:"serverId,omitempty"`
	ServerName    string        `json:"serverName,omitempty"`
	Address       string        `json:"address,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Files         []string      `json:"files,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// IsServed reports whether this attempt completed service.
func (a Attempt) IsServed() bool {
	return a.Status == AttemptServed
}

// laterThan orders attempts by attempt date, then insertion time, then id.
// The later inserted attempt wins a timestamp tie.
func (a Attempt) laterThan(b Attempt) bool {
	if !a.AttemptDate.Equal(b.AttemptDate) {
		return a.AttemptDate.After(b.AttemptDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}

func latest(attempts []Attempt, keep func(Attempt) bool) (Attempt, bool) {
	var best Attempt
	found := false
	for _, a := range attempts {
		if keep != nil && !keep(a) {
			continue
		}
		if !found || a.laterThan(best) {
			best = a
			found = true
		}
	}
	return best, found
}

// LatestServed returns the most recent served attempt.
func LatestServed(attempts []Attempt) (Attempt, bool) {
	return latest(attempts, Attempt.IsServed)
}

// SelectPrimary picks the attempt that drives the affidavit narrative: the
// latest served attempt, else the latest attempt of any status, else nil.
func SelectPrimary(attempts []Attempt) *Attempt {
	if a, ok := LatestServed(attempts); ok {
		return &a
	}
	if a, ok := latest(attempts, nil); ok {
		return &a
	}
	return nil
}

// Chronological returns a copy of attempts sorted oldest first, using the
// same ordering as SelectPrimary.
func Chronological(attempts []Attempt) []Attempt {
	out := make([]Attempt, len(attempts))
	copy(out, attempts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].laterThan(out[i])
	})
	return out
}
