package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsPubliclyVisible(t *testing.T) {
	now := time.Now()
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	cases := []struct {
		name     string
		status   JobStatus
		deadline time.Time
		want     bool
	}{
		{"published before deadline", JobStatusPublished, future, true},
		{"active before deadline", JobStatusActive, future, true},
		{"draft is hidden", JobStatusDraft, future, false},
		{"paused is hidden", JobStatusPaused, future, false},
		{"closed is hidden", JobStatusClosed, future, false},
		{"published past deadline", JobStatusPublished, past, false},
		{"active past deadline", JobStatusActive, past, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := &Job{Status: tc.status, Deadline: tc.deadline}
			assert.Equal(t, tc.want, job.IsPubliclyVisible(now))
		})
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name     string
		status   JobStatus
		deadline time.Time
		want     JobStatus
	}{
		{"published past deadline reads expired", JobStatusPublished, past, JobStatusExpired},
		{"active past deadline reads expired", JobStatusActive, past, JobStatusExpired},
		{"paused past deadline reads expired", JobStatusPaused, past, JobStatusExpired},
		{"closed stays closed", JobStatusClosed, past, JobStatusClosed},
		{"draft stays draft", JobStatusDraft, past, JobStatusDraft},
		{"published before deadline unchanged", JobStatusPublished, future, JobStatusPublished},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := &Job{Status: tc.status, Deadline: tc.deadline}
			assert.Equal(t, tc.want, job.EffectiveStatus(now))
		})
	}
}

func TestDeadlinePassedExactInstant(t *testing.T) {
	now := time.Now()
	job := &Job{Deadline: now}
	// Deadline exactly now has not passed; Before is strict.
	assert.False(t, job.DeadlinePassed(now))
	assert.True(t, job.DeadlinePassed(now.Add(time.Nanosecond)))
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]JobStatus{
		"draft":     JobStatusDraft,
		"published": JobStatusPublished,
		"active":    JobStatusActive,
		"paused":    JobStatusPaused,
		"closed":    JobStatusClosed,
		"live":      JobStatusPublished,
		"inactive":  JobStatusPaused,
		"":          JobStatusPublished,
		"nonsense":  JobStatusPublished,
		"expired":   JobStatusPublished,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "raw=%q", raw)
	}
}

func TestOwnedBy(t *testing.T) {
	job := &Job{UserID: "u1"}
	assert.True(t, job.OwnedBy("u1"))
	assert.False(t, job.OwnedBy("u2"))
	assert.False(t, job.OwnedBy(""))
}
