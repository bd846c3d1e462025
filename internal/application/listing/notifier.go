// Package listing implements the list-management loop shared by every entity
// screen: load the collection, narrow it with search and filters, paginate
// it, and drive create, edit, delete and quick status changes through a
// form, reloading after every successful mutation.
package listing

import "strings"

// Notifier receives the transient messages produced by list operations.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// NopNotifier discards every message.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Failure(string) {}

// Label names an entity in user-facing messages, e.g. {"Branch", "branches"}.
type Label struct {
	Singular string
	Plural   string
}

func (l Label) lower() string {
	return strings.ToLower(l.Singular)
}

// Created is the notification for a successful create.
func (l Label) Created() string { return l.Singular + " created successfully" }

// Updated is the notification for a successful edit.
func (l Label) Updated() string { return l.Singular + " updated successfully" }

// Deleted is the notification for a successful delete.
func (l Label) Deleted() string { return l.Singular + " deleted successfully" }

// DeletePrompt is the confirmation question asked before a delete.
func (l Label) DeletePrompt() string {
	return "Are you sure you want to delete this " + l.lower() + "?"
}

func (l Label) loadFailed() string   { return "Failed to load " + l.Plural }
func (l Label) createFailed() string { return "Failed to create " + l.lower() }
func (l Label) updateFailed() string { return "Failed to update " + l.lower() }
func (l Label) deleteFailed() string { return "Failed to delete " + l.lower() }
