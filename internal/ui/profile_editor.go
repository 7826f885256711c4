package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/gcode"
	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/piwi3910/CycloDisc/internal/project"
)

// previewPoints is how many outer-profile points the profile preview keeps.
const previewPoints = 6

// profilePreview renders disc idx of res with profile p, using the design's
// machining settings. The output is a real disc program cut down to one pass.
func profilePreview(res *engine.Result, d model.Design, idx int, p model.GCodeProfile) string {
	if res == nil || len(res.Discs) == 0 {
		return "Generate a valid design to preview this profile on its discs."
	}
	if idx < 0 || idx >= len(res.Discs) {
		idx = 0
	}
	code, err := gcode.NewForDesign(d).WithProfile(p).Preview(*res, idx, previewPoints)
	if err != nil {
		return fmt.Sprintf("Preview unavailable: %v", err)
	}
	return code
}

// profileIssues lists what would make p produce a broken disc program.
// Bores and output holes are cut as full arcs, so both arc words are needed.
func profileIssues(p model.GCodeProfile) []string {
	var issues []string
	if strings.TrimSpace(p.Name) == "" {
		issues = append(issues, "profile name cannot be empty")
	}
	if p.DecimalPlaces < 0 || p.DecimalPlaces > 10 {
		issues = append(issues, "decimal places must be between 0 and 10")
	}
	if p.RapidMove == "" || p.FeedMove == "" {
		issues = append(issues, "rapid and feed move commands are required")
	}
	if p.ArcCW == "" || p.ArcCCW == "" {
		issues = append(issues, "bores and holes are cut as arcs: both arc commands are required")
	}
	if p.SpindleStart != "" && strings.Count(p.SpindleStart, "%d") != 1 {
		issues = append(issues, "spindle start must contain exactly one %d for the RPM")
	}
	return issues
}

// copyProfile returns src under a new name with its own start and end code.
func copyProfile(src model.GCodeProfile, name, description string) model.GCodeProfile {
	dup := src
	dup.Name = name
	dup.Description = description
	dup.StartCode = append([]string(nil), src.StartCode...)
	dup.EndCode = append([]string(nil), src.EndCode...)
	return dup
}

// profileFileName is the suggested export name for a profile.
func profileFileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_") + "_profile.json"
}

// splitLines splits a multiline string into trimmed, non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// discNames lists the suffixes of the generated discs, if any.
func (a *App) discNames() []string {
	if a.result == nil {
		return nil
	}
	names := make([]string, len(a.result.Discs))
	for i, d := range a.result.Discs {
		names[i] = d.Suffix
	}
	return names
}

// previewPane shows a profile applied to one of the current discs. The
// returned setter swaps the profile being previewed.
func (a *App) previewPane() (fyne.CanvasObject, func(model.GCodeProfile)) {
	var current model.GCodeProfile
	loaded := false
	disc := 0

	text := widget.NewMultiLineEntry()
	text.TextStyle = fyne.TextStyle{Monospace: true}
	text.Wrapping = fyne.TextWrapOff
	text.SetMinRowsVisible(14)

	render := func() {
		if !loaded {
			return
		}
		text.SetText(profilePreview(a.result, a.design, disc, current))
	}

	discSelect := widget.NewSelect(a.discNames(), func(string) {})
	discSelect.OnChanged = func(string) {
		disc = discSelect.SelectedIndex()
		render()
	}
	if len(discSelect.Options) > 0 {
		discSelect.SetSelectedIndex(0)
	}

	top := container.NewHBox(widget.NewLabel("Preview on disc:"), discSelect)
	return container.NewBorder(top, nil, nil, nil, text), func(p model.GCodeProfile) {
		current, loaded = p, true
		render()
	}
}

// showProfileManager lists the built-in and custom GCode profiles and
// previews the selected one against the current design's discs.
func (a *App) showProfileManager() {
	w := a.app.NewWindow("GCode Profiles")
	w.Resize(fyne.NewSize(900, 560))

	profiles := model.AllProfiles()
	selected := -1

	preview, showPreview := a.previewPane()
	details := widget.NewLabel("Select a profile.")
	issues := widget.NewLabel("")
	issues.Wrapping = fyne.TextWrapWord

	useBtn := widget.NewButtonWithIcon("Use for Design", theme.ConfirmIcon(), nil)
	editBtn := widget.NewButtonWithIcon("Edit", theme.DocumentCreateIcon(), nil)
	dupBtn := widget.NewButtonWithIcon("Duplicate", theme.ContentCopyIcon(), nil)
	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), nil)
	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), nil)
	actions := []*widget.Button{useBtn, editBtn, dupBtn, exportBtn, deleteBtn}
	for _, b := range actions {
		b.Disable()
	}

	var list *widget.List
	show := func(i int) {
		selected = i
		p := profiles[i]
		builtIn := model.IsBuiltInProfile(p.Name)
		details.SetText(fmt.Sprintf("%s\n%s\nrapid %s, feed %s, arcs %s/%s, %d decimals, comments %q%q",
			p.Name, p.Description, p.RapidMove, p.FeedMove, p.ArcCW, p.ArcCCW,
			p.DecimalPlaces, p.CommentPrefix, p.CommentSuffix))
		issues.SetText(strings.Join(profileIssues(p), "\n"))
		showPreview(p)

		for _, b := range actions {
			b.Enable()
		}
		if builtIn {
			editBtn.Disable()
			deleteBtn.Disable()
		}
		if p.Name == a.design.Machining.GCodeProfile {
			useBtn.Disable()
		}
	}
	reload := func() {
		profiles = model.AllProfiles()
		list.UnselectAll()
		list.Refresh()
		selected = -1
		for _, b := range actions {
			b.Disable()
		}
		a.refreshToolpath()
	}

	list = widget.NewList(
		func() int { return len(profiles) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewLabel("profile"), layout.NewSpacer(), widget.NewLabel("tag"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row := obj.(*fyne.Container)
			p := profiles[id]
			row.Objects[0].(*widget.Label).SetText(p.Name)
			tag := ""
			switch {
			case p.Name == a.design.Machining.GCodeProfile:
				tag = "active"
			case model.IsBuiltInProfile(p.Name):
				tag = "built-in"
			}
			row.Objects[2].(*widget.Label).SetText(tag)
		},
	)
	list.OnSelected = func(id widget.ListItemID) { show(id) }

	useBtn.OnTapped = func() {
		name := profiles[selected].Name
		a.applyChange("GCode profile", func(d *model.Design) { d.Machining.GCodeProfile = name })
		list.Refresh()
		useBtn.Disable()
	}
	editBtn.OnTapped = func() {
		a.showEditProfileDialog(profiles[selected], reload)
	}
	dupBtn.OnTapped = func() {
		a.showNameProfileDialog(w, "Duplicate Profile", profiles[selected], reload)
	}
	exportBtn.OnTapped = func() {
		a.exportProfileDialog(profiles[selected], w)
	}
	deleteBtn.OnTapped = func() {
		name := profiles[selected].Name
		dialog.ShowConfirm("Delete Profile", fmt.Sprintf("Delete custom profile %q?", name), func(ok bool) {
			if !ok {
				return
			}
			if err := model.RemoveCustomProfile(name); err != nil {
				dialog.ShowError(err, w)
				return
			}
			a.persistCustomProfiles(w)
			reload()
		}, w)
	}

	newBtn := widget.NewButtonWithIcon("New", theme.ContentAddIcon(), func() {
		a.showNameProfileDialog(w, "New Profile", model.GetProfile("Generic"), reload)
	})
	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		a.importProfileDialog(w, reload)
	})

	left := container.NewBorder(nil, container.NewHBox(newBtn, importBtn), nil, nil, list)
	right := container.NewBorder(
		container.NewVBox(details, issues, container.NewHBox(useBtn, editBtn, dupBtn, exportBtn, deleteBtn)),
		nil, nil, nil,
		preview,
	)
	split := container.NewHSplit(left, right)
	split.SetOffset(0.28)
	w.SetContent(split)
	w.Show()
}

// showNameProfileDialog creates a custom profile from source under a name
// the user picks.
func (a *App) showNameProfileDialog(w fyne.Window, title string, source model.GCodeProfile, onCreated func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(source.Name + " (Copy)")

	dialog.ShowForm(title, "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", nameEntry)},
		func(ok bool) {
			if !ok {
				return
			}
			p := copyProfile(source, strings.TrimSpace(nameEntry.Text), "Based on "+source.Name)
			if err := model.AddCustomProfile(p); err != nil {
				dialog.ShowError(err, w)
				return
			}
			a.persistCustomProfiles(w)
			onCreated()
		}, w)
}

// showEditProfileDialog edits a custom profile. The preview tab renders the
// unsaved edits against the current discs.
func (a *App) showEditProfileDialog(p model.GCodeProfile, onSaved func()) {
	w := a.app.NewWindow("Edit Profile: " + p.Name)

	entry := func(v string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(v)
		return e
	}
	code := func(lines []string) *widget.Entry {
		e := widget.NewMultiLineEntry()
		e.SetText(strings.Join(lines, "\n"))
		e.SetMinRowsVisible(4)
		return e
	}

	name, desc := entry(p.Name), entry(p.Description)
	decimals := entry(strconv.Itoa(p.DecimalPlaces))
	rapid, feed := entry(p.RapidMove), entry(p.FeedMove)
	arcCW, arcCCW := entry(p.ArcCW), entry(p.ArcCCW)
	absolute, feedMode := entry(p.AbsoluteMode), entry(p.FeedMode)
	spindleOn, spindleOff := entry(p.SpindleStart), entry(p.SpindleStop)
	home := entry(p.HomeAll)
	commentPre, commentSuf := entry(p.CommentPrefix), entry(p.CommentSuffix)
	start, end := code(p.StartCode), code(p.EndCode)

	read := func() (model.GCodeProfile, error) {
		places, err := strconv.Atoi(strings.TrimSpace(decimals.Text))
		if err != nil {
			places = -1
		}
		edited := model.GCodeProfile{
			Name:          strings.TrimSpace(name.Text),
			Description:   desc.Text,
			Units:         "mm",
			StartCode:     splitLines(start.Text),
			SpindleStart:  spindleOn.Text,
			SpindleStop:   spindleOff.Text,
			HomeAll:       home.Text,
			AbsoluteMode:  absolute.Text,
			FeedMode:      feedMode.Text,
			RapidMove:     rapid.Text,
			FeedMove:      feed.Text,
			ArcCW:         arcCW.Text,
			ArcCCW:        arcCCW.Text,
			EndCode:       splitLines(end.Text),
			CommentPrefix: commentPre.Text,
			CommentSuffix: commentSuf.Text,
			DecimalPlaces: places,
		}
		if problems := profileIssues(edited); len(problems) > 0 {
			return edited, fmt.Errorf("%s", strings.Join(problems, "\n"))
		}
		return edited, nil
	}

	preview, showPreview := a.previewPane()
	previewTab := container.NewTabItem("Preview", preview)
	tabs := container.NewAppTabs(
		container.NewTabItem("Commands", container.NewVScroll(container.NewGridWithColumns(2,
			widget.NewLabel("Name"), name,
			widget.NewLabel("Description"), desc,
			widget.NewLabel("Decimal Places"), decimals,
			widget.NewLabel("Rapid / Feed"), container.NewGridWithColumns(2, rapid, feed),
			widget.NewLabel("Arc CW / CCW"), container.NewGridWithColumns(2, arcCW, arcCCW),
			widget.NewLabel("Absolute / Feed Mode"), container.NewGridWithColumns(2, absolute, feedMode),
			widget.NewLabel("Spindle On (%d = RPM) / Off"), container.NewGridWithColumns(2, spindleOn, spindleOff),
			widget.NewLabel("Home"), home,
			widget.NewLabel("Comment Prefix / Suffix"), container.NewGridWithColumns(2, commentPre, commentSuf),
		))),
		container.NewTabItem("Start / End Code", container.NewVBox(
			widget.NewLabel("Start code, one command per line"), start,
			widget.NewLabel("End code; [SafeZ] becomes the safe height"), end,
		)),
		previewTab,
	)
	tabs.OnSelected = func(t *container.TabItem) {
		if t != previewTab {
			return
		}
		edited, _ := read()
		if edited.DecimalPlaces < 0 || edited.DecimalPlaces > 10 {
			edited.DecimalPlaces = p.DecimalPlaces
		}
		showPreview(edited)
	}

	saveBtn := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		edited, err := read()
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if edited.Name != p.Name {
			_ = model.RemoveCustomProfile(p.Name)
			if a.design.Machining.GCodeProfile == p.Name {
				a.applyChange("GCode profile", func(d *model.Design) { d.Machining.GCodeProfile = edited.Name })
			}
		}
		if err := model.AddCustomProfile(edited); err != nil {
			dialog.ShowError(err, w)
			return
		}
		a.persistCustomProfiles(w)
		onSaved()
		w.Close()
	})
	saveBtn.Importance = widget.HighImportance

	w.SetContent(container.NewBorder(nil, container.NewHBox(layout.NewSpacer(), saveBtn), nil, nil, tabs))
	w.Resize(fyne.NewSize(760, 560))
	w.Show()
}

func (a *App) importProfileDialog(w fyne.Window, onImported func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		p, err := project.ImportProfile(reader.URI().Path())
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to import profile: %w", err), w)
			return
		}
		if problems := profileIssues(p); len(problems) > 0 {
			a.log.Warn("imported profile has issues", "profile", p.Name, "issues", problems)
		}
		if err := model.AddCustomProfile(p); err != nil {
			dialog.ShowError(err, w)
			return
		}
		a.persistCustomProfiles(w)
		onImported()
	}, w)
}

func (a *App) exportProfileDialog(p model.GCodeProfile, w fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.ExportProfile(writer.URI().Path(), p); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export profile: %w", err), w)
		}
	}, w)
	d.SetFileName(profileFileName(p.Name))
	d.Show()
}

func (a *App) persistCustomProfiles(w fyne.Window) {
	if err := project.SaveCustomProfilesToDefault(model.CustomProfiles); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save profiles: %w", err), w)
	}
}
