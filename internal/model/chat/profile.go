package chat

import (
	"fmt"
	"strings"
)

// Profile holds the recognized patient attributes. All fields are optional;
// nil means "never supplied". Unrecognized keys in incoming JSON are
// dropped by the decoder.
type Profile struct {
	Name       *string `json:"name,omitempty"`
	Age        *int    `json:"age,omitempty"`
	Sex        *string `json:"sex,omitempty"`
	Pregnant   *bool   `json:"pregnant,omitempty"`
	Allergies  *string `json:"allergies,omitempty"`
	Conditions *string `json:"conditions,omitempty"`
}

// Merge overwrites each field that is present (non-nil) in update. Absent
// and null fields leave the stored value untouched.
func (p *Profile) Merge(update Profile) {
	if update.Name != nil {
		p.Name = update.Name
	}
	if update.Age != nil {
		p.Age = update.Age
	}
	if update.Sex != nil {
		p.Sex = update.Sex
	}
	if update.Pregnant != nil {
		p.Pregnant = update.Pregnant
	}
	if update.Allergies != nil {
		p.Allergies = update.Allergies
	}
	if update.Conditions != nil {
		p.Conditions = update.Conditions
	}
}

// Empty reports whether no field has ever been supplied.
func (p Profile) Empty() bool {
	return p.Name == nil && p.Age == nil && p.Sex == nil &&
		p.Pregnant == nil && p.Allergies == nil && p.Conditions == nil
}

// ContextLines renders the present fields as "Label: value" lines in a
// fixed order, for the patient-context system message. Empty strings are
// skipped; booleans render as True/False.
func (p Profile) ContextLines() []string {
	var lines []string
	appendLine := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		lines = append(lines, label+": "+value)
	}
	if p.Name != nil {
		appendLine("Name", *p.Name)
	}
	if p.Age != nil {
		appendLine("Age", fmt.Sprintf("%d", *p.Age))
	}
	if p.Sex != nil {
		appendLine("Sex", *p.Sex)
	}
	if p.Pregnant != nil {
		if *p.Pregnant {
			appendLine("Pregnant", "True")
		} else {
			appendLine("Pregnant", "False")
		}
	}
	if p.Allergies != nil {
		appendLine("Allergies", *p.Allergies)
	}
	if p.Conditions != nil {
		appendLine("Conditions", *p.Conditions)
	}
	return lines
}
