// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package templates serves the built-in catalog of ready-made forms and
// turns a template into a fresh draft form schema.
package templates

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidCatalog   = errors.New("invalid template catalog")
)

type templateDoc struct {
	ID                string                   `yaml:"id"`
	Name              string                   `yaml:"name"`
	Category          string                   `yaml:"category"`
	Description       string                   `yaml:"description"`
	AutoCreateLead    bool                     `yaml:"auto_create_lead"`
	AutoCreateContact bool                     `yaml:"auto_create_contact"`
	LeadFieldMapping  map[string]string        `yaml:"lead_field_mapping"`
	ConditionalRules  []models.ConditionalRule `yaml:"conditional_rules"`
	Fields            []fieldDoc               `yaml:"fields"`
}

type fieldDoc struct {
	ID          string         `yaml:"id"`
	Type        string         `yaml:"type"`
	Label       string         `yaml:"label"`
	Placeholder string         `yaml:"placeholder"`
	Required    bool           `yaml:"required"`
	Options     []string       `yaml:"options"`
	Validation  map[string]any `yaml:"validation"`
	Description string         `yaml:"description"`
	Width       string         `yaml:"width"`
}

type entry struct {
	template models.FormTemplate
	schema   models.FormSchema
}

// Catalog is an immutable, ordered set of templates.
type Catalog struct {
	entries []entry
	byID    map[string]int
}

// Builtin parses the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	return Parse(builtin)
}

// Parse reads a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var docs []templateDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	c := &Catalog{byID: make(map[string]int, len(docs))}
	for _, doc := range docs {
		if doc.ID == "" {
			return nil, fmt.Errorf("%w: template without id", ErrInvalidCatalog)
		}
		if _, dup := c.byID[doc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate template %s", ErrInvalidCatalog, doc.ID)
		}

		e, err := doc.toEntry()
		if err != nil {
			return nil, fmt.Errorf("%w: template %s: %w", ErrInvalidCatalog, doc.ID, err)
		}
		c.byID[doc.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// List returns every template in catalog order.
func (c *Catalog) List() []models.FormTemplate {
	out := make([]models.FormTemplate, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.template
		out[i].Fields = e.schema.Clone().Fields
	}
	return out
}

// Get returns the template with id.
func (c *Catalog) Get(id string) (models.FormTemplate, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.FormTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	t := c.entries[i].template
	t.Fields = c.entries[i].schema.Clone().Fields
	return t, nil
}

// Instantiate returns a draft schema built from template id. Every field gets
// a new id and rule and mapping references follow the rename.
func (c *Catalog) Instantiate(id string) (models.FormSchema, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.FormSchema{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	schema := formschema.RegenerateSchemaIDs(c.entries[i].schema)
	schema.Status = models.StatusDraft
	return schema, nil
}

func (d templateDoc) toEntry() (entry, error) {
	fields := make([]models.FieldSchema, 0, len(d.Fields))
	for i, fd := range d.Fields {
		f, err := fd.toField(d.ID, i)
		if err != nil {
			return entry{}, err
		}
		fields = append(fields, f)
	}

	mapping := make(models.LeadFieldMapping, len(d.LeadFieldMapping))
	for attr, fieldID := range d.LeadFieldMapping {
		mapping[models.CRMAttribute(attr)] = fieldID
	}
	rules := d.ConditionalRules
	if rules == nil {
		rules = []models.ConditionalRule{}
	}

	return entry{
		template: models.FormTemplate{
			ID:          d.ID,
			Name:        d.Name,
			Category:    d.Category,
			Description: d.Description,
		},
		schema: models.FormSchema{
			Fields:            fields,
			Title:             d.Name,
			Description:       d.Description,
			Status:            models.StatusDraft,
			AutoCreateLead:    d.AutoCreateLead,
			AutoCreateContact: d.AutoCreateContact,
			LeadFieldMapping:  mapping,
			ConditionalRules:  rules,
		},
	}, nil
}

func (fd fieldDoc) toField(templateID string, index int) (models.FieldSchema, error) {
	f := formschema.NewField(models.FieldType(fd.Type))
	f.ID = fd.ID
	if f.ID == "" {
		f.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(templateID+"/"+strconv.Itoa(index))).String()
	}
	if fd.Label != "" {
		f.Label = fd.Label
	}
	f.Placeholder = fd.Placeholder
	f.Required = fd.Required
	f.Description = fd.Description
	if fd.Options != nil {
		f.Options = fd.Options
	}
	if fd.Width == string(models.WidthHalf) {
		f.Width = models.WidthHalf
	}

	if len(fd.Validation) > 0 {
		raw, err := json.Marshal(fd.Validation)
		if err != nil {
			return models.FieldSchema{}, err
		}
		v, err := models.DecodeValidation(f.Type, raw)
		if err != nil {
			return models.FieldSchema{}, err
		}
		f.Validation = v
	}
	return f, nil
}
