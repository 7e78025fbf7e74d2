package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThaiIsDefault(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "th", tr.Lang())
	assert.Equal(t, "บันทึกฝึกงาน", tr.T("internship_log"))
}

func TestEnglishLocale(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "Internship Log", tr.T("internship_log"))
	assert.Equal(t, "confirm", tr.T("confirm_keyword"))
}

func TestConfirmKeywordPerLocale(t *testing.T) {
	th, err := New("th")
	require.NoError(t, err)
	assert.Equal(t, "ยืนยัน", th.T("confirm_keyword"))
}

func TestMissingKeyFallsBackToKey(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "definitely_not_a_key", tr.T("definitely_not_a_key"))
}

func TestToggled(t *testing.T) {
	th, err := New("th")
	require.NoError(t, err)
	assert.Equal(t, "en", th.Toggled())

	en, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "th", en.Toggled())
}

func TestLocalesCoverSameKeys(t *testing.T) {
	th, err := New("th")
	require.NoError(t, err)
	en, err := New("en")
	require.NoError(t, err)

	for _, key := range []string{
		"new_entry", "date", "hours", "description", "work_link",
		"save_entry", "save_changes", "recent_logs", "export_excel",
		"view_list", "view_grid", "view_table", "view_calendar",
		"delete", "select_all", "deselect_all", "confirm_delete_title",
		"type_confirm", "confirm_keyword", "cancel", "log_details",
		"holiday_leave", "no_records", "total_hours", "work_days",
		"days_off", "months",
	} {
		assert.NotEqual(t, key, th.T(key), "thai missing %s", key)
		assert.NotEqual(t, key, en.T(key), "english missing %s", key)
	}
}
