// Package view owns the in-memory snapshot of treatment records and the
// state driving the list, form, and statistics presentations. The snapshot
// is a disposable cache: after every successful mutation it is rebuilt with
// a full reload rather than patched in place.
//
// A Controller is confined to a single event goroutine and performs no
// internal locking; each control issues at most one request at a time.
package view

import (
	"errors"

	"github.com/healthtrack/treatment-tracker/model"
	"github.com/healthtrack/treatment-tracker/report"
)

// ErrRequestInFlight is returned when a control is triggered again while
// its previous request is still outstanding.
var ErrRequestInFlight = errors.New("request already in flight")

// loadErrorMessage is shown when the record list cannot be fetched.
const loadErrorMessage = "Failed to load treatments. Check that the backend is running."

// API is the subset of client operations the controller drives.
type API interface {
	Create(model.TreatmentInput) (*model.Treatment, error)
	List() ([]model.Treatment, error)
	Delete(id uint) error
}

// Presentation is the single state the list renders in; the three states
// never overlap.
type Presentation int

const (
	PresentationLoading Presentation = iota
	PresentationEmpty
	PresentationList
)

// Controller owns the treatment snapshot, the filter state, and the
// loading/error flags, and orchestrates reload-after-mutation.
type Controller struct {
	api API

	treatments []model.Treatment
	loading    bool
	errMsg     string
	filters    report.Filters

	formVisible       bool
	statisticsVisible bool
	form              *Form

	submitting      bool
	deletingID      uint
	pendingDeleteID uint
	itemErrors      map[uint]string
}

// NewController returns a controller with an empty snapshot. Call Load to
// populate it.
func NewController(api API) *Controller {
	return &Controller{
		api:        api,
		form:       NewForm(),
		itemErrors: map[uint]string{},
	}
}

// Load fetches the full record list and replaces the snapshot. The later of
// two completing loads wins; a load already in flight rejects the trigger.
func (c *Controller) Load() error {
	if c.loading {
		return ErrRequestInFlight
	}
	c.loading = true
	treatments, err := c.api.List()
	c.loading = false

	if err != nil {
		c.errMsg = loadErrorMessage
		return err
	}
	c.treatments = treatments
	c.errMsg = ""
	return nil
}

// Treatments returns the unfiltered snapshot. Callers must treat it as
// read-only.
func (c *Controller) Treatments() []model.Treatment {
	return c.treatments
}

// Loading reports whether a list fetch is outstanding.
func (c *Controller) Loading() bool {
	return c.loading
}

// Error returns the current load error message, empty when the last load
// succeeded.
func (c *Controller) Error() string {
	return c.errMsg
}

// SetFilters replaces the filter state.
func (c *Controller) SetFilters(f report.Filters) {
	c.filters = f
}

// Filters returns the current filter state.
func (c *Controller) Filters() report.Filters {
	return c.filters
}

// ClearFilters resets all three predicates.
func (c *Controller) ClearFilters() {
	c.filters = report.Filters{}
}

// FilteredTreatments derives the records passing the current filters.
func (c *Controller) FilteredTreatments() []model.Treatment {
	return report.Filter(c.treatments, c.filters)
}

// AvailableTypes lists the type-filter options from the unfiltered
// snapshot.
func (c *Controller) AvailableTypes() []string {
	return report.AvailableTypes(c.treatments)
}

// Statistics summarizes the currently filtered records.
func (c *Controller) Statistics() report.Stats {
	return report.Summarize(c.FilteredTreatments())
}

// Presentation reports which of the three mutually exclusive list states to
// render.
func (c *Controller) Presentation() Presentation {
	if c.loading {
		return PresentationLoading
	}
	if len(c.FilteredTreatments()) == 0 {
		return PresentationEmpty
	}
	return PresentationList
}

// Form returns the create form owned by this controller.
func (c *Controller) Form() *Form {
	return c.form
}

// FormVisible reports whether the create form is open.
func (c *Controller) FormVisible() bool {
	return c.formVisible
}

// ShowForm opens the create form.
func (c *Controller) ShowForm() {
	c.formVisible = true
}

// HideForm closes the create form without clearing it.
func (c *Controller) HideForm() {
	c.formVisible = false
}

// StatisticsVisible reports whether the statistics panel is open.
func (c *Controller) StatisticsVisible() bool {
	return c.statisticsVisible
}

// ToggleStatistics opens or closes the statistics panel.
func (c *Controller) ToggleStatistics() {
	c.statisticsVisible = !c.statisticsVisible
}

// SubmitForm validates and submits the create form. Invalid input never
// issues a request. On success the form is cleared and closed and the
// snapshot reloaded in full.
func (c *Controller) SubmitForm() error {
	if c.submitting {
		return ErrRequestInFlight
	}
	if !c.form.Validate() {
		return nil
	}

	c.submitting = true
	_, err := c.api.Create(c.form.Input())
	c.submitting = false

	if err != nil {
		c.form.applyServerError(err)
		return err
	}

	c.form.Reset()
	c.formVisible = false
	return c.Load()
}

// Submitting reports whether a create request is outstanding.
func (c *Controller) Submitting() bool {
	return c.submitting
}

// RequestDelete arms the two-step delete confirmation for id. Only one
// record may be pending confirmation at a time; re-arming switches the
// target.
func (c *Controller) RequestDelete(id uint) {
	c.pendingDeleteID = id
}

// PendingDelete returns the id awaiting confirmation, 0 when none.
func (c *Controller) PendingDelete() uint {
	return c.pendingDeleteID
}

// CancelDelete disarms the pending confirmation.
func (c *Controller) CancelDelete() {
	c.pendingDeleteID = 0
}

// ConfirmDelete executes the armed deletion. On failure the record stays in
// place with an inline error; on success the snapshot is reloaded in full.
func (c *Controller) ConfirmDelete() error {
	if c.pendingDeleteID == 0 {
		return nil
	}
	if c.deletingID != 0 {
		return ErrRequestInFlight
	}

	id := c.pendingDeleteID
	c.deletingID = id
	err := c.api.Delete(id)
	c.deletingID = 0
	c.pendingDeleteID = 0

	if err != nil {
		c.itemErrors[id] = err.Error()
		return err
	}
	delete(c.itemErrors, id)
	return c.Load()
}

// ItemError returns the inline error for a record whose deletion failed.
func (c *Controller) ItemError(id uint) string {
	return c.itemErrors[id]
}
