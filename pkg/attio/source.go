package attio

import "context"

// Source is one queryable scope: an object's records or a list's entries.
// The Translator and Projector work against this interface so they can be
// tested without a live API.
type Source interface {
	// Scope names the target for error messages, e.g. "object people".
	Scope() string
	// Schema fetches the attribute definitions for the scope.
	Schema(ctx context.Context) (Schema, error)
	// Options fetches the option/status set for a select or status attribute.
	Options(ctx context.Context, attribute string, typ AttributeType) ([]SelectOption, error)
	// Query runs a translated query and returns raw records.
	Query(ctx context.Context, q *WireQuery) ([]RawRecord, error)
}

type objectSource struct {
	c    *Client
	slug string
}

// Object returns a Source over an object type's records.
func (c *Client) Object(slug string) Source {
	return &objectSource{c: c, slug: slug}
}

func (s *objectSource) Scope() string { return "object " + s.slug }

func (s *objectSource) Schema(ctx context.Context) (Schema, error) {
	return s.c.ObjectSchema(ctx, s.slug)
}

func (s *objectSource) Options(ctx context.Context, attribute string, typ AttributeType) ([]SelectOption, error) {
	// Objects do not carry status attributes, but Attio serves both shapes
	// from the options endpoint for object scopes.
	return s.c.SelectOptions(ctx, s.slug, attribute)
}

func (s *objectSource) Query(ctx context.Context, q *WireQuery) ([]RawRecord, error) {
	return s.c.QueryRecords(ctx, s.slug, q)
}

type listSource struct {
	c  *Client
	id string
}

// List returns a Source over a list's entries.
func (c *Client) List(id string) Source {
	return &listSource{c: c, id: id}
}

func (s *listSource) Scope() string { return "list " + s.id }

func (s *listSource) Schema(ctx context.Context) (Schema, error) {
	return s.c.ListSchema(ctx, s.id)
}

func (s *listSource) Options(ctx context.Context, attribute string, typ AttributeType) ([]SelectOption, error) {
	if typ == TypeStatus {
		return s.c.ListStatuses(ctx, s.id, attribute)
	}
	return s.c.ListSelectOptions(ctx, s.id, attribute)
}

func (s *listSource) Query(ctx context.Context, q *WireQuery) ([]RawRecord, error) {
	return s.c.QueryListEntries(ctx, s.id, q)
}
