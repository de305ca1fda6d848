package template

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/services/markdown"
)

func testView(t *testing.T, username string, now time.Time) customer.View {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c, err := customer.ReconstructCustomer("cus_1", "123456789012345678", username, "",
		vo.NitroBasic, start, 1, nil, "", vo.StatusActive, start, start)
	require.NoError(t, err)
	return customer.NewView(c, now, 7)
}

func newTestRenderer(t *testing.T, path string) *Renderer {
	t.Helper()
	r, err := NewRenderer(path, markdown.NewMarkdownService(), logger.NewNopLogger())
	require.NoError(t, err)
	return r
}

func TestRender_ExpiringSoon(t *testing.T) {
	r := newTestRenderer(t, "")
	now := time.Date(2024, 1, 29, 12, 0, 0, 0, time.UTC)

	msg, err := r.Render(KindExpiringSoon, r.Data(testView(t, "alice", now), ""))
	require.NoError(t, err)
	assert.Equal(t, "Hey alice, your Discord Nitro Basic subscription ends on 2024-02-01 (2 days left). Reply here to renew.", msg)
}

func TestRender_UrgentUsesHoursAndMentionFallback(t *testing.T) {
	r := newTestRenderer(t, "")
	now := time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)

	msg, err := r.Render(KindExpiringUrgent, r.Data(testView(t, "", now), ""))
	require.NoError(t, err)
	assert.Contains(t, msg, "<@123456789012345678>")
	assert.Contains(t, msg, "1 hour ")
}

func TestData_SanitizesUserInput(t *testing.T) {
	r := newTestRenderer(t, "")
	now := time.Date(2024, 1, 29, 12, 0, 0, 0, time.UTC)

	data := r.Data(testView(t, "<b>**eve**</b>", now), "<script>x</script>see you")
	assert.Equal(t, `\*\*eve\*\*`, data.Name)
	assert.Equal(t, "see you", data.Message)
}

func TestRender_ManualMessage(t *testing.T) {
	r := newTestRenderer(t, "")
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	v := testView(t, "alice", now)

	msg, err := r.Render(KindManual, r.Data(v, "Custom note"))
	require.NoError(t, err)
	assert.Equal(t, "Custom note", msg)

	msg, err = r.Render(KindManual, r.Data(v, ""))
	require.NoError(t, err)
	assert.Contains(t, msg, "ending 2024-02-01")
}

func TestNewRenderer_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("renewed: \"Renewed until {{.EndDate}}\"\nbogus: \"x\"\n"), 0o644))

	r := newTestRenderer(t, path)
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	msg, err := r.Render(KindRenewed, r.Data(testView(t, "alice", now), ""))
	require.NoError(t, err)
	assert.Equal(t, "Renewed until 2024-02-01", msg)

	// Untouched kinds keep their defaults.
	msg, err = r.Render(KindExpired, r.Data(testView(t, "alice", now), ""))
	require.NoError(t, err)
	assert.Contains(t, msg, "expired on 2024-02-01")
}

func TestNewRenderer_BadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("manual: \"{{.Nope\"\n"), 0o644))

	_, err := NewRenderer(path, markdown.NewMarkdownService(), logger.NewNopLogger())
	assert.Error(t, err)
}

func TestNewRenderer_MissingFileKeepsDefaults(t *testing.T) {
	r := newTestRenderer(t, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Len(t, r.templates, len(allKinds))
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, KindExpiringUrgent, KindFor(24, 24))
	assert.Equal(t, KindExpiringUrgent, KindFor(3, 24))
	assert.Equal(t, KindExpiringSoon, KindFor(25, 24))
}
