package tag

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"pawtrails/internal/db"
	tagdomain "pawtrails/internal/domain/tag"
)

type Neo4jRepository struct {
	db *db.Client
}

func NewNeo4j(client *db.Client) *Neo4jRepository {
	return &Neo4jRepository{db: client}
}

func (r *Neo4jRepository) Create(ctx context.Context, t *tagdomain.Tag) error {
	query := `CREATE (t:Tag {uuid: $uuid, name: $name, color: $color, created_at: $created_at, updated_at: $updated_at})
RETURN t`

	_, err := r.db.Run(ctx, query, map[string]any{
		"uuid":       t.UUID,
		"name":       t.Name,
		"color":      string(t.Color),
		"created_at": timestamp(t.CreatedAt),
		"updated_at": timestamp(t.UpdatedAt),
	})
	return err
}

func (r *Neo4jRepository) GetByUUID(ctx context.Context, uuid string) (*tagdomain.Tag, error) {
	return r.getBy(ctx, "uuid", uuid)
}

func (r *Neo4jRepository) GetByName(ctx context.Context, name string) (*tagdomain.Tag, error) {
	return r.getBy(ctx, "name", name)
}

func (r *Neo4jRepository) getBy(ctx context.Context, property, value string) (*tagdomain.Tag, error) {
	switch property {
	case "uuid", "name":
	default:
		return nil, fmt.Errorf("unsupported tag lookup property %q", property)
	}

	query := fmt.Sprintf(`MATCH (t:Tag {%s: $value})
RETURN t`, property)

	result, err := r.db.Run(ctx, query, map[string]any{"value": value})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, tagdomain.ErrTagNotFound
	}

	node, err := nodeValue(result.Records[0], "t")
	if err != nil {
		return nil, err
	}
	t := nodeToTag(node)
	return &t, nil
}

func (r *Neo4jRepository) List(ctx context.Context, skip, limit int) ([]tagdomain.Tag, error) {
	query := `MATCH (t:Tag)
RETURN t
ORDER BY t.name
SKIP $skip LIMIT $limit`

	result, err := r.db.Run(ctx, query, map[string]any{"skip": skip, "limit": limit})
	if err != nil {
		return nil, err
	}

	tags := make([]tagdomain.Tag, 0, len(result.Records))
	for _, record := range result.Records {
		node, err := nodeValue(record, "t")
		if err != nil {
			return nil, err
		}
		tags = append(tags, nodeToTag(node))
	}
	return tags, nil
}

func (r *Neo4jRepository) Delete(ctx context.Context, uuid string) error {
	query := `MATCH (t:Tag {uuid: $uuid})
DETACH DELETE t`

	_, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	return err
}

func nodeToTag(node neo4j.Node) tagdomain.Tag {
	props := node.Props
	return tagdomain.Tag{
		UUID:      stringProp(props, "uuid"),
		Name:      stringProp(props, "name"),
		Color:     tagdomain.Color(stringProp(props, "color")),
		CreatedAt: timeProp(props, "created_at"),
		UpdatedAt: timeProp(props, "updated_at"),
	}
}

func nodeValue(record *neo4j.Record, key string) (neo4j.Node, error) {
	value, ok := record.Get(key)
	if !ok {
		return neo4j.Node{}, fmt.Errorf("missing %q in query result", key)
	}
	node, ok := value.(neo4j.Node)
	if !ok {
		return neo4j.Node{}, fmt.Errorf("result value %q is not a node", key)
	}
	return node, nil
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func stringProp(props map[string]any, key string) string {
	value, _ := props[key].(string)
	return value
}

func timeProp(props map[string]any, key string) time.Time {
	value, _ := props[key].(string)
	parsed, _ := time.Parse(time.RFC3339Nano, value)
	return parsed
}
