package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var characterNameRe = regexp.MustCompile(`^[\p{L}][\p{L}'\-]{1,23}$`)

// ValidateCharacterName checks a WoW character name (2-24 letters, the game
// allows accented characters).
func ValidateCharacterName(name string) error {
	if name == "" {
		return fmt.Errorf("character name is required")
	}
	if !characterNameRe.MatchString(name) {
		return fmt.Errorf("invalid character name")
	}
	return nil
}

// ValidateDifficulty checks a raid difficulty value.
func ValidateDifficulty(d string) error {
	switch d {
	case DifficultyMythic, DifficultyHeroic, DifficultyNormal:
		return nil
	}
	return fmt.Errorf("invalid difficulty %q", d)
}

// ValidateApplicationStatus checks a recruitment application status.
func ValidateApplicationStatus(s string) error {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return nil
	}
	return fmt.Errorf("invalid application status %q", s)
}

// ValidateRegion checks a Battle.net region code.
func ValidateRegion(r string) error {
	switch strings.ToLower(r) {
	case "eu", "us", "kr", "tw":
		return nil
	}
	return fmt.Errorf("invalid region %q", r)
}

// ValidateBattleTag checks the name#1234 shape of a BattleTag.
func ValidateBattleTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("battle tag is required")
	}
	i := strings.IndexByte(tag, '#')
	if i < 2 || i == len(tag)-1 {
		return fmt.Errorf("invalid battle tag format")
	}
	for _, c := range tag[i+1:] {
		if c < '0' || c > '9' {
			return fmt.Errorf("invalid battle tag format")
		}
	}
	return nil
}
