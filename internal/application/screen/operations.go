package screen

import (
	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/domain/operations"
)

func commandsConfig() Config[operations.Command, *operations.CommandForm] {
	type C = operations.Command
	return Config[C, *operations.CommandForm]{
		Key:        "commands",
		Title:      "Commands",
		Label:      listing.Label{Singular: "Command", Plural: "commands"},
		Collection: "commands",
		Schema: &listing.Schema[C]{
			Search: []listing.SearchField[C]{
				{Name: "title", Value: func(c C) string { return c.Title }},
				{Name: "description", Value: func(c C) string { return c.Description }},
			},
			Filters: []listing.FilterDef[C]{
				{Key: "status", Kind: listing.FilterEnum, Options: operations.CommandStatuses, Match: listing.EqualMatch(func(c C) string { return c.Status })},
				{Key: "priority", Kind: listing.FilterEnum, Options: operations.CommandPriorities, Match: listing.EqualMatch(func(c C) string { return c.Priority })},
				{Key: "type", Kind: listing.FilterEnum, Options: operations.CommandTypes, Match: listing.EqualMatch(func(c C) string { return c.Type })},
			},
		},
		Columns: []Column[C]{
			idColumn[C](),
			text("TITLE", func(c C) string { return c.Title }),
			text("TYPE", func(c C) string { return c.Type }),
			text("PRIORITY", func(c C) string { return c.Priority }),
			text("STATUS", func(c C) string { return c.Status }),
			text("DUE", func(c C) string { return dateTime(c.DueDate) }),
			{Header: "ASSIGNED TO", Value: func(c C, refs *Refs) string { return personName(refs.Users, c.AssignedTo) }},
			{Header: "ISSUED BY", Value: func(c C, refs *Refs) string { return personName(refs.Users, c.IssuedBy) }},
		},
		References: []string{RefUsers},
		RefFields:  map[string]string{"assignedTo": RefUsers},
		NewForm:    operations.NewCommandForm,
		Prepare: func(f *operations.CommandForm, env Env) {
			if env.Client != nil {
				f.SetIssuer(env.Client.Session().UserID())
			}
		},
		Actions: []Action[C]{{
			Name:    "status",
			Help:    "Set the status of a command",
			Options: operations.CommandStatuses,
			Build:   operations.CommandStatusTransition,
			Success: func(*C, string) string { return "Command status updated successfully" },
			Failure: "Failed to update command status",
		}},
	}
}

func personName(users listing.Lookup, p *operations.Person) string {
	if p == nil {
		return ""
	}
	if name := p.Name(); name != "" {
		return name
	}
	return users.Name(p.ID, listing.Unknown)
}
