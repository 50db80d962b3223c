package domain

import "errors"

// ErrAmbiguousAssignment is returned when both a person and a counterparty are given
var ErrAmbiguousAssignment = errors.New("slot cannot be assigned to a person and a counterparty at once")

// AssignmentKind tells who holds a slot
type AssignmentKind int

const (
	AssignmentNone AssignmentKind = iota
	AssignmentPerson
	AssignmentCounterparty
)

func (k AssignmentKind) String() string {
	switch k {
	case AssignmentPerson:
		return "person"
	case AssignmentCounterparty:
		return "counterparty"
	default:
		return "none"
	}
}

// Assignment is None, Person(id) or Counterparty(id). The zero value is None.
type Assignment struct {
	kind AssignmentKind
	id   int64
}

// NoAssignment returns the empty assignment
func NoAssignment() Assignment {
	return Assignment{}
}

// PersonAssignment assigns a slot to a person
func PersonAssignment(personID int64) Assignment {
	return Assignment{kind: AssignmentPerson, id: personID}
}

// CounterpartyAssignment assigns a slot to a counterparty
func CounterpartyAssignment(counterpartyID int64) Assignment {
	return Assignment{kind: AssignmentCounterparty, id: counterpartyID}
}

// AssignmentFromIDs builds an assignment from two optional references
// (storage columns or request fields). Both set is an error.
func AssignmentFromIDs(personID, counterpartyID *int64) (Assignment, error) {
	switch {
	case personID != nil && counterpartyID != nil:
		return Assignment{}, ErrAmbiguousAssignment
	case personID != nil:
		return PersonAssignment(*personID), nil
	case counterpartyID != nil:
		return CounterpartyAssignment(*counterpartyID), nil
	default:
		return NoAssignment(), nil
	}
}

func (a Assignment) Kind() AssignmentKind {
	return a.kind
}

// ID is the assignee id; 0 for None
func (a Assignment) ID() int64 {
	return a.id
}

func (a Assignment) IsNone() bool {
	return a.kind == AssignmentNone
}

// PersonID returns the person reference as a nullable column value
func (a Assignment) PersonID() *int64 {
	if a.kind != AssignmentPerson {
		return nil
	}
	id := a.id
	return &id
}

// CounterpartyID returns the counterparty reference as a nullable column value
func (a Assignment) CounterpartyID() *int64 {
	if a.kind != AssignmentCounterparty {
		return nil
	}
	id := a.id
	return &id
}
