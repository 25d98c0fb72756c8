package engine

import "fmt"

// String backed enums for storage and export interoperability.

type Zone string

const (
	ZoneHokkaido Zone = "Hokkaido"
	ZoneTohoku   Zone = "Tohoku"
	ZoneKanto    Zone = "Kanto"
	ZoneChubu    Zone = "Chubu"
	ZoneKansai   Zone = "Kansai"
	ZoneChugoku  Zone = "Chugoku"
	ZoneShikoku  Zone = "Shikoku"
	ZoneKyushu   Zone = "Kyushu"
	ZoneOkinawa  Zone = "Okinawa"
)

var AllZones = []Zone{ZoneHokkaido, ZoneTohoku, ZoneKanto, ZoneChubu, ZoneKansai, ZoneChugoku, ZoneShikoku, ZoneKyushu, ZoneOkinawa}

// Level is the experience level recorded for a region.
type Level int

const (
	LevelNever Level = iota
	LevelPassed
	LevelAlighted
	LevelVisited
	LevelStayed
	LevelLived
)

const (
	MinLevel   = LevelNever
	MaxLevel   = LevelLived
	LevelCount = int(MaxLevel) + 1
)

var AllLevels = []Level{LevelNever, LevelPassed, LevelAlighted, LevelVisited, LevelStayed, LevelLived}

var levelNames = [LevelCount]string{
	"Never been there",
	"Passed there",
	"Alighted there",
	"Visited there",
	"Stayed there",
	"Lived there",
}

// exportKeys are the level_breakdown field names used by the JSON export.
var exportKeys = [LevelCount]string{"never_been", "passed", "alighted", "visited", "stayed", "lived"}

func (l Level) Valid() bool { return l >= MinLevel && l <= MaxLevel }

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Key returns the snake_case identifier of the level.
func (l Level) Key() string {
	if !l.Valid() {
		return ""
	}
	return exportKeys[l]
}

// ParseLevel validates an integer read from storage or input.
func ParseLevel(v int) (Level, error) {
	l := Level(v)
	if !l.Valid() {
		return LevelNever, fmt.Errorf("level %d out of range [%d,%d]", v, MinLevel, MaxLevel)
	}
	return l, nil
}

// Mode is the active primary view. Exactly one is active at a time.
type Mode int

const (
	ModeList Mode = iota
	ModeMap
	ModeStats
	ModeAltMap
)

func (m Mode) String() string {
	switch m {
	case ModeMap:
		return "map"
	case ModeStats:
		return "stats"
	case ModeAltMap:
		return "altmap"
	default:
		return "list"
	}
}

type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Command is the closed set of inputs the controller understands.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandToggleHelp
	CommandToggleMap
	CommandToggleStats
	CommandToggleAltMap
	CommandUp
	CommandDown
	CommandLeft
	CommandRight
	CommandToggleDetail
	CommandCloseDetail
	CommandSetLevel0
	CommandSetLevel1
	CommandSetLevel2
	CommandSetLevel3
	CommandSetLevel4
	CommandSetLevel5
	CommandExportJSON
	CommandExportCSV
	CommandExportReport
	CommandCycleTheme
)

// SetLevelCommand maps a level to its command.
func SetLevelCommand(l Level) Command {
	if !l.Valid() {
		return CommandNone
	}
	return CommandSetLevel0 + Command(l)
}

// Level reports the level carried by a set-level command.
func (c Command) Level() (Level, bool) {
	if c < CommandSetLevel0 || c > CommandSetLevel5 {
		return LevelNever, false
	}
	return Level(c - CommandSetLevel0), true
}

// Effect is the side effect a transition asks the session to perform.
type Effect int

const (
	EffectNone Effect = iota
	EffectSave
	EffectExportJSON
	EffectExportCSV
	EffectExportReport
	EffectCycleTheme
	EffectQuit
)

// Format identifies an export flavour.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts the CLI spelling of an export format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatMarkdown:
		return Format(s), nil
	case "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q (json|csv|md)", s)
}
