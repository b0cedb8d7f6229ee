package mdeditor

import "github.com/zjrosen/mdpad/internal/insert"

// Zone IDs for mouse click detection via bubblezone.
const (
	zoneButtonPrefix = "mdeditor-btn:"
	zoneText         = "mdeditor-text"
	zonePreview      = "mdeditor-preview"
)

// Toolbar actions beyond the insertion kinds.
const (
	actionUndo = "undo"
	actionRedo = "redo"
	actionSave = "save"
)

type button struct {
	label  string
	action string
}

// toolbar lists the buttons in display order.
var toolbar = []button{
	{"H1", insert.H1.String()},
	{"H2", insert.H2.String()},
	{"H3", insert.H3.String()},
	{"H4", insert.H4.String()},
	{"Img", insert.Image.String()},
	{"Link", insert.Link.String()},
	{"Code", insert.Code.String()},
	{"Undo", actionUndo},
	{"Redo", actionRedo},
	{"Save", actionSave},
}

func buttonZoneID(action string) string {
	return zoneButtonPrefix + action
}
