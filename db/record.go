package db

import (
	"fmt"
	"strings"

	fp "github.com/packetsight/helloprint/fputil"
)

// Direction tells which side of the connection a record applies to.
type Direction uint8

const (
	// DirectionClient marks a client-to-server signature.
	DirectionClient Direction = iota

	// DirectionServer marks a server-to-client signature.
	DirectionServer
)

// Parse a direction from its "cl" or "sv" form.
func (a *Direction) Parse(s string) error {
	switch s {
	case "cl":
		*a = DirectionClient
	case "sv":
		*a = DirectionServer
	default:
		return fmt.Errorf("invalid direction: '%s'", s)
	}
	return nil
}

// String returns a string representation of the direction.
func (a Direction) String() string {
	switch a {
	case DirectionClient:
		return "cl"
	case DirectionServer:
		return "sv"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(a))
	}
}

// Class tells whether a record names an application or an operating
// system; applications use the negative marker.
type Class int8

const (
	// ClassOS marks an operating system record.
	ClassOS Class = 0

	// ClassApp marks an application record.
	ClassApp Class = -1
)

// String returns the observation field key used for the class.
func (a Class) String() string {
	if a < 0 {
		return "app"
	}
	return "os"
}

// A Record is one registered signature together with its descriptive
// metadata. Records are allocated at load time, never mutated after
// insertion, and live for the process's lifetime.
type Record struct {
	Direction Direction
	Generic   bool
	Class     Class
	Name      string
	Flavor    string
	Label     string
	Systems   fp.StringList
	Signature fp.Signature

	// LineNo is the database line the record came from, kept for
	// diagnostics.
	LineNo int
}

// Parse a record of the form "direction|label|systems|signature", where
// label follows the "[gs]:(!|class):name:flavor" convention: 'g' for
// generic records, '!' for applications.
func (a *Record) Parse(s string) error {
	split := strings.Split(s, "|")
	if len(split) != 4 {
		return fmt.Errorf("invalid record format: '%s'", s)
	}
	if err := a.Direction.Parse(split[0]); err != nil {
		return err
	}
	if err := a.parseLabel(split[1]); err != nil {
		return err
	}
	if err := a.Systems.Parse(split[2]); err != nil {
		return err
	}
	if err := a.Signature.Parse(split[3]); err != nil {
		return err
	}
	return nil
}

func (a *Record) parseLabel(s string) error {
	split := strings.SplitN(s, ":", 4)
	if len(split) != 4 {
		return fmt.Errorf("invalid label format: '%s'", s)
	}
	switch split[0] {
	case "g":
		a.Generic = true
	case "s":
		a.Generic = false
	default:
		return fmt.Errorf("invalid label type: '%s'", s)
	}
	if split[1] == "!" {
		a.Class = ClassApp
	} else {
		a.Class = ClassOS
	}
	if len(split[2]) == 0 {
		return fmt.Errorf("invalid label name: '%s'", s)
	}
	a.Label = s
	a.Name = split[2]
	a.Flavor = split[3]
	return nil
}

// FullName returns the record name with the flavor appended, the form
// shown in observations.
func (a Record) FullName() string {
	if len(a.Flavor) == 0 {
		return a.Name
	}
	return a.Name + " " + a.Flavor
}

// String returns a string representation of the record.
func (a Record) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", a.Direction, a.Label, a.Systems, a.Signature)
}
