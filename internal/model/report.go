package model

import (
	"time"

	"github.com/wicaksana/report-tracking/internal/workflow"
)

// Report is a tracked unit of work moving through the approval chain.
// The letter number is the unique human-facing key used for public tracking
// lookups and is immutable once assigned. Status may only change along the
// edges defined in the workflow package.
//
// Fields:
//  ID           – primary key identifier.
//  LetterNumber – unique public lookup key (e.g. "RPT001").
//  Subject      – subject text of the letter.
//  Status       – current workflow status.
//  ServiceType  – one of the fixed service-type catalog entries.
//  Disposition  – descriptive disposition sheet metadata (not state-bearing).
//  CreatedBy    – TU user who registered the report (users.id).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Report struct {
	ID           uint64           // reports.id
	LetterNumber string           // reports.letter_number
	Subject      string           // reports.subject
	Status       workflow.Status  // reports.status
	ServiceType  string           // reports.service_type
	Disposition  DispositionSheet // reports.disposition_* columns
	CreatedBy    uint64           // reports.created_by
	CreatedAt    time.Time        // reports.created_at
	UpdatedAt    time.Time        // reports.updated_at
}

// DispositionSheet holds the structured descriptive metadata attached to a
// report. None of these fields participate in workflow state.
//
// Fields:
//  Nature           – nature tags (stored as a comma-joined column).
//  Degree           – degree/urgency tags (stored as a comma-joined column).
//  AgendaNo         – internal agenda number.
//  OriginatingGroup – group the letter originated from.
//  SestamaAgenda    – secretariat agenda reference.
//  LetterNo         – letter number as written on the sheet.
//  From             – sender of the letter.
//  AgendaDate       – date the letter entered the agenda.
//  LetterDate       – date written on the letter.
type DispositionSheet struct {
	Nature           []string // reports.disposition_nature
	Degree           []string // reports.disposition_degree
	AgendaNo         string   // reports.disposition_agenda_no
	OriginatingGroup string   // reports.disposition_originating_group
	SestamaAgenda    string   // reports.disposition_sestama_agenda
	LetterNo         string   // reports.disposition_letter_no
	From             string   // reports.disposition_from
	AgendaDate       string   // reports.disposition_agenda_date
	LetterDate       string   // reports.disposition_letter_date
}
