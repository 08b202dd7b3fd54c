package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAge(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{
			name:  "birthday already passed this year",
			birth: time.Date(1990, time.March, 10, 0, 0, 0, 0, time.UTC),
			want:  36,
		},
		{
			name:  "birthday later this year",
			birth: time.Date(1990, time.December, 10, 0, 0, 0, 0, time.UTC),
			want:  35,
		},
		{
			name:  "65th birthday today counts as reached",
			birth: time.Date(1961, time.September, 1, 0, 0, 0, 0, time.UTC),
			want:  65,
		},
		{
			name:  "65th birthday tomorrow",
			birth: time.Date(1961, time.September, 2, 0, 0, 0, 0, time.UTC),
			want:  64,
		},
		{
			name:  "born earlier this year",
			birth: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(tt.birth, now))
		})
	}
}

func TestMemberCode(t *testing.T) {
	assert.Equal(t, "M1000-2026", MemberCode(1000, 2026))
	assert.Equal(t, "M1042-2027", MemberCode(1042, 2027))
}
