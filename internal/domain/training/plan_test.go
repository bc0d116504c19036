package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

func ptr(v uint) *uint { return &v }

func TestTargetOf(t *testing.T) {
	tests := []struct {
		name      string
		athleteID *uint
		teamID    *uint
		wantCode  string
		want      Target
	}{
		{name: "both", athleteID: ptr(1), teamID: ptr(2), wantCode: "ambiguous_target"},
		{name: "neither", wantCode: "missing_target"},
		{name: "zero ids count as unset", athleteID: ptr(0), teamID: ptr(0), wantCode: "missing_target"},
		{name: "athlete", athleteID: ptr(3), want: Target{Kind: TargetAthlete, ID: 3}},
		{name: "team", teamID: ptr(4), want: Target{Kind: TargetTeam, ID: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TargetOf(tt.athleteID, tt.teamID)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, httperr.IsBusiness(err, tt.wantCode))
				kind, _ := httperr.KindOf(err)
				assert.Equal(t, httperr.KindValidation, kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTargetApply_ClearsOtherSide(t *testing.T) {
	plan := &models.TrainingPlan{AthleteID: ptr(1)}

	Target{Kind: TargetTeam, ID: 9}.Apply(plan)

	assert.Nil(t, plan.AthleteID)
	require.NotNil(t, plan.TeamID)
	assert.Equal(t, uint(9), *plan.TeamID)
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("07:30")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datatypes.NewTime(7, 30, 0, 0), *got)
	assert.Equal(t, "07:30", *FormatTimeOfDay(got))

	got, err = ParseTimeOfDay("18:05:00")
	require.NoError(t, err)
	assert.Equal(t, "18:05", *FormatTimeOfDay(got))

	got, err = ParseTimeOfDay("")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, FormatTimeOfDay(nil))

	_, err = ParseTimeOfDay("25:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))
}

func TestValidateSchedule(t *testing.T) {
	early := datatypes.NewTime(8, 0, 0, 0)
	late := datatypes.NewTime(9, 0, 0, 0)

	assert.NoError(t, ValidateSchedule("Sprints", &early, &late))
	assert.NoError(t, ValidateSchedule("Sprints", &early, &early))
	assert.NoError(t, ValidateSchedule("Sprints", nil, &late))
	assert.True(t, httperr.IsBusiness(ValidateSchedule("Sprints", &late, &early), "invalid_time_range"))
	assert.True(t, httperr.IsBusiness(ValidateSchedule("  ", nil, nil), "invalid_name"))
}

func TestFilterFromQuery(t *testing.T) {
	f, err := FilterFromQuery("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", f.From.Format(DateLayout))
	assert.Equal(t, "2025-01-31", f.To.Format(DateLayout))

	f, err = FilterFromQuery("", "")
	require.NoError(t, err)
	assert.Nil(t, f.From)
	assert.Nil(t, f.To)

	_, err = FilterFromQuery("2025-02-01", "2025-01-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))

	_, err = FilterFromQuery("01/02/2025", "")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
