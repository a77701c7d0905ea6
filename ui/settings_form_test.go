package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/imagedeck"
	"github.com/VantageDataChat/imagedeck/internal/config"
	"github.com/VantageDataChat/imagedeck/settings"
)

func TestSettingsFormDefaults(t *testing.T) {
	test.NewTempApp(t)
	sf := NewSettingsForm(config.Default())

	s, err := sf.Settings()
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), s)

	req := sf.Request([]string{"a.png"})
	assert.Equal(t, config.DefaultOutput, req.Output)
	assert.True(t, req.Override, "the window starts with override checked")
	assert.Equal(t, imagedeck.LayoutScreen4x3, req.SlideSize)
	assert.Equal(t, []string{"a.png"}, req.Images)
}

func TestSettingsFormEdits(t *testing.T) {
	test.NewTempApp(t)
	cfg := config.Default()
	cfg.Output.SlideSize = "16x9"
	sf := NewSettingsForm(cfg)

	sf.topEntry.SetText("0")
	sf.hSpacingEntry.SetText("0.25")
	sf.colorEntry.SetText("springgreen")
	test.Tap(sf.roundedCheck)
	test.Tap(sf.overrideCheck)
	sf.SetOutput("")

	s, err := sf.Settings()
	require.NoError(t, err)
	assert.Equal(t, settings.Inches(0), s.TopMargin)
	assert.Equal(t, settings.Inches(0.25), s.HSpacing)
	assert.True(t, s.Rounded)
	assert.Equal(t, settings.RGB{G: 255, B: 127}, s.Color())

	req := sf.Request(nil)
	assert.False(t, req.Override)
	assert.Equal(t, config.DefaultOutput, req.Output)
	assert.Equal(t, imagedeck.LayoutScreen16x9, req.SlideSize)
}

func TestSettingsFormOverrideFromConfig(t *testing.T) {
	test.NewTempApp(t)
	cfg := config.Default()
	cfg.GUI.Override = false
	sf := NewSettingsForm(cfg)
	assert.False(t, sf.Request(nil).Override)
}

func TestSettingsFormReportsEveryBadField(t *testing.T) {
	test.NewTempApp(t)
	sf := NewSettingsForm(config.Default())
	sf.leftEntry.SetText("wide")
	sf.lineEntry.SetText("")
	sf.colorEntry.SetText("nope")

	_, err := sf.Settings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left margin must be a number")
	assert.Contains(t, err.Error(), "line width cannot be empty")
	assert.ErrorIs(t, err, settings.ErrInvalidColor)
}
