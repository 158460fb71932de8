package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Level identifies a taxonomy level.
type Level int

const (
	LevelNone Level = iota
	LevelCategory
	LevelSubCategory
	LevelSuperSubCategory
)

var levelNames = map[Level]string{
	LevelNone:             "none",
	LevelCategory:         "category",
	LevelSubCategory:      "sub_category",
	LevelSuperSubCategory: "super_sub_category",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Depth is the number of slug segments that address the level.
func (l Level) Depth() int {
	return int(l)
}

// LevelForDepth maps a slug path length to its taxonomy level.
func LevelForDepth(depth int) (Level, bool) {
	switch depth {
	case 1:
		return LevelCategory, true
	case 2:
		return LevelSubCategory, true
	case 3:
		return LevelSuperSubCategory, true
	}
	return LevelNone, false
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// Ref points at a single taxonomy node. The zero value means "unassigned".
type Ref struct {
	Level Level
	ID    uuid.UUID
}

// IsZero reports whether the ref points nowhere.
func (r Ref) IsZero() bool {
	return r.Level == LevelNone
}

func (r Ref) String() string {
	if r.IsZero() {
		return "none"
	}
	return r.Level.String() + ":" + r.ID.String()
}
