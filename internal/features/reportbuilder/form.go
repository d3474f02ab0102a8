package reportbuilder

import "go-crossroads/internal/features/reportconfig"

func BuildForm(schema *reportconfig.Schema, enc Encoder) Form {
	form := Form{
		ReportType: schema.Type,
		Title:      schema.Title,
		Encoding:   enc.EncodingFor(schema),
		Sections:   schema.Sections(),
		Filters:    make([]FilterView, 0, len(schema.Filters)),
		Fields:     make([]FieldView, 0, len(schema.Fields)),
		SortFields: schema.SortFields,
	}

	for _, f := range schema.Filters {
		view := FilterView{
			Key:       f.Key,
			Label:     f.Label,
			Kind:      f.Kind.String(),
			Section:   f.Section,
			Reference: f.Reference,
		}
		if lower, upper, ok := f.Kind.Bounds(); ok {
			view.Bounds = []string{lower, upper}
		}
		form.Filters = append(form.Filters, view)
	}

	for _, f := range schema.Fields {
		form.Fields = append(form.Fields, FieldView{
			Key:           f.Key,
			Label:         f.Label,
			Group:         f.Group,
			AlwaysEnabled: f.AlwaysEnabled,
		})
	}
	return form
}
