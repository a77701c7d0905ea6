package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/VantageDataChat/imagedeck"
	"github.com/VantageDataChat/imagedeck/internal/config"
	"github.com/VantageDataChat/imagedeck/settings"
)

// slideSizes are the choices of the slide size select.
var slideSizes = []string{
	imagedeck.LayoutScreen4x3,
	imagedeck.LayoutScreen16x9,
	imagedeck.LayoutScreen16x10,
	imagedeck.LayoutA4,
	imagedeck.LayoutLetter,
}

// SettingsForm holds the layout and output fields.
type SettingsForm struct {
	topEntry      *widget.Entry
	leftEntry     *widget.Entry
	rightEntry    *widget.Entry
	bottomEntry   *widget.Entry
	hSpacingEntry *widget.Entry
	vSpacingEntry *widget.Entry
	lineEntry     *widget.Entry
	colorEntry    *widget.Entry
	roundedCheck  *widget.Check

	outputEntry     *widget.Entry
	overrideCheck   *widget.Check
	slideSizeSelect *widget.Select

	form *fyne.Container
}

// NewSettingsForm creates the form filled from cfg.
func NewSettingsForm(cfg config.Config) *SettingsForm {
	sf := &SettingsForm{}

	sf.topEntry = widget.NewEntry()
	sf.leftEntry = widget.NewEntry()
	sf.rightEntry = widget.NewEntry()
	sf.bottomEntry = widget.NewEntry()
	sf.hSpacingEntry = widget.NewEntry()
	sf.vSpacingEntry = widget.NewEntry()
	sf.lineEntry = widget.NewEntry()
	sf.colorEntry = widget.NewEntry()
	sf.colorEntry.SetPlaceHolder("#0066cc or springgreen")
	sf.roundedCheck = widget.NewCheck("Rounded corners", nil)

	sf.outputEntry = widget.NewEntry()
	sf.outputEntry.SetPlaceHolder(config.DefaultOutput)
	sf.overrideCheck = widget.NewCheck("Override existing file", nil)
	sf.slideSizeSelect = widget.NewSelect(slideSizes, nil)

	sf.SetConfig(cfg)

	margins := widget.NewForm(
		widget.NewFormItem("Top (in)", sf.topEntry),
		widget.NewFormItem("Left (in)", sf.leftEntry),
		widget.NewFormItem("Right (in)", sf.rightEntry),
		widget.NewFormItem("Bottom (in)", sf.bottomEntry),
	)
	spacing := widget.NewForm(
		widget.NewFormItem("Horizontal (in)", sf.hSpacingEntry),
		widget.NewFormItem("Vertical (in)", sf.vSpacingEntry),
	)
	border := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Line width (pt)", sf.lineEntry),
			widget.NewFormItem("Color", sf.colorEntry),
		),
		sf.roundedCheck,
	)
	output := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("File", sf.outputEntry),
			widget.NewFormItem("Slide size", sf.slideSizeSelect),
		),
		sf.overrideCheck,
	)

	accordion := widget.NewAccordion(
		widget.NewAccordionItem("Margins", margins),
		widget.NewAccordionItem("Spacing", spacing),
		widget.NewAccordionItem("Border", border),
		widget.NewAccordionItem("Output", output),
	)
	accordion.MultiOpen = true
	accordion.Open(0)
	accordion.Open(3)

	sf.form = container.NewVBox(accordion)
	return sf
}

// Container returns the form's Fyne container.
func (sf *SettingsForm) Container() *fyne.Container {
	return sf.form
}

// SetConfig replaces every field with the values in cfg.
func (sf *SettingsForm) SetConfig(cfg config.Config) {
	l := cfg.Layout
	sf.topEntry.SetText(formatFloat(l.TopMargin))
	sf.leftEntry.SetText(formatFloat(l.LeftMargin))
	sf.rightEntry.SetText(formatFloat(l.RightMargin))
	sf.bottomEntry.SetText(formatFloat(l.BottomMargin))
	sf.hSpacingEntry.SetText(formatFloat(l.HSpacing))
	sf.vSpacingEntry.SetText(formatFloat(l.VSpacing))
	sf.lineEntry.SetText(formatFloat(l.LineWidth))
	sf.colorEntry.SetText(l.Color)
	sf.roundedCheck.SetChecked(l.Rounded)

	sf.outputEntry.SetText(cfg.Output.Path)
	sf.overrideCheck.SetChecked(cfg.GUI.Override)
	size := imagedeck.LayoutScreen4x3
	if dl, err := imagedeck.ParseLayout(cfg.Output.SlideSize); err == nil && dl.Name != imagedeck.LayoutCustom {
		size = dl.Name
	}
	sf.slideSizeSelect.SetSelected(size)
}

// Settings builds layout settings from the form. Every invalid field is
// reported in the returned error.
func (sf *SettingsForm) Settings() (settings.Settings, error) {
	var errs []error
	length := func(e *widget.Entry, name string) float64 {
		v, err := parseFloatField(e.Text, name)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	s := settings.Settings{
		TopMargin:    settings.Inches(length(sf.topEntry, "top margin")),
		LeftMargin:   settings.Inches(length(sf.leftEntry, "left margin")),
		RightMargin:  settings.Inches(length(sf.rightEntry, "right margin")),
		BottomMargin: settings.Inches(length(sf.bottomEntry, "bottom margin")),
		HSpacing:     settings.Inches(length(sf.hSpacingEntry, "horizontal spacing")),
		VSpacing:     settings.Inches(length(sf.vSpacingEntry, "vertical spacing")),
		LineWidth:    settings.Points(length(sf.lineEntry, "line width")),
		Rounded:      sf.roundedCheck.Checked,
	}
	if err := s.SetColorString(sf.colorEntry.Text); err != nil {
		errs = append(errs, fmt.Errorf("color: %w", err))
	}
	if len(errs) > 0 {
		return settings.Settings{}, errors.Join(errs...)
	}
	return s, nil
}

// Request returns the generation request for images with the form's output
// fields. An empty file name falls back to config.DefaultOutput.
func (sf *SettingsForm) Request(images []string) imagedeck.Request {
	out := sf.outputEntry.Text
	if out == "" {
		out = config.DefaultOutput
	}
	return imagedeck.Request{
		Images:    images,
		Output:    out,
		Override:  sf.overrideCheck.Checked,
		SlideSize: sf.slideSizeSelect.Selected,
	}
}

// SetOutput sets the output file field.
func (sf *SettingsForm) SetOutput(path string) {
	sf.outputEntry.SetText(path)
}

// Output returns the output file field.
func (sf *SettingsForm) Output() string {
	return sf.outputEntry.Text
}
