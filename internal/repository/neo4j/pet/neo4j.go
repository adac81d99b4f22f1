package pet

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"pawtrails/internal/db"
	petdomain "pawtrails/internal/domain/pet"
	userdomain "pawtrails/internal/domain/user"
)

type Neo4jRepository struct {
	db *db.Client
}

func NewNeo4j(client *db.Client) *Neo4jRepository {
	return &Neo4jRepository{db: client}
}

func (r *Neo4jRepository) Create(ctx context.Context, p *petdomain.Pet, ownerUUID string) error {
	query := `MATCH (o:User {uuid: $owner})
CREATE (p:Pet {uuid: $uuid, name: $name, breed: $breed, energy: $energy, size: $size, created_at: $created_at, updated_at: $updated_at})
CREATE (o)-[:OWNS {created_at: $created_at}]->(p)
RETURN p`

	result, err := r.db.Run(ctx, query, map[string]any{
		"owner":      ownerUUID,
		"uuid":       p.UUID,
		"name":       p.Name,
		"breed":      p.Breed,
		"energy":     p.Energy,
		"size":       string(p.Size),
		"created_at": timestamp(p.CreatedAt),
		"updated_at": timestamp(p.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (r *Neo4jRepository) GetByUUID(ctx context.Context, uuid string) (*petdomain.Pet, error) {
	query := `MATCH (p:Pet {uuid: $uuid})
RETURN p`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, petdomain.ErrPetNotFound
	}

	node, err := nodeValue(result.Records[0], "p")
	if err != nil {
		return nil, err
	}
	p := nodeToPet(node)
	return &p, nil
}

func (r *Neo4jRepository) List(ctx context.Context, skip, limit int) ([]petdomain.Pet, error) {
	query := `MATCH (p:Pet)
RETURN p
ORDER BY p.created_at
SKIP $skip LIMIT $limit`

	result, err := r.db.Run(ctx, query, map[string]any{"skip": skip, "limit": limit})
	if err != nil {
		return nil, err
	}
	return recordsToPets(result.Records)
}

func (r *Neo4jRepository) ListByOwner(ctx context.Context, ownerUUID string) ([]petdomain.Pet, error) {
	query := `MATCH (o:User {uuid: $owner})-[:OWNS]->(p:Pet)
RETURN p
ORDER BY p.created_at`

	result, err := r.db.Run(ctx, query, map[string]any{"owner": ownerUUID})
	if err != nil {
		return nil, err
	}
	return recordsToPets(result.Records)
}

func (r *Neo4jRepository) Update(ctx context.Context, p *petdomain.Pet) error {
	query := `MATCH (p:Pet {uuid: $uuid})
SET p.name = $name, p.breed = $breed, p.energy = $energy, p.size = $size, p.updated_at = $updated_at
RETURN p`

	result, err := r.db.Run(ctx, query, map[string]any{
		"uuid":       p.UUID,
		"name":       p.Name,
		"breed":      p.Breed,
		"energy":     p.Energy,
		"size":       string(p.Size),
		"updated_at": timestamp(p.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return petdomain.ErrPetNotFound
	}
	return nil
}

func (r *Neo4jRepository) Delete(ctx context.Context, uuid string) error {
	query := `MATCH (p:Pet {uuid: $uuid})
DETACH DELETE p`

	_, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	return err
}

func (r *Neo4jRepository) Owners(ctx context.Context, petUUID string) ([]userdomain.User, error) {
	query := `MATCH (p:Pet {uuid: $uuid})<-[:OWNS]-(o:User)
RETURN o`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": petUUID})
	if err != nil {
		return nil, err
	}

	owners := make([]userdomain.User, 0, len(result.Records))
	for _, record := range result.Records {
		node, err := nodeValue(record, "o")
		if err != nil {
			return nil, err
		}
		owners = append(owners, nodeToUser(node))
	}
	return owners, nil
}

func (r *Neo4jRepository) CreateOwner(ctx context.Context, petUUID, ownerUUID string, at time.Time) (bool, error) {
	query := `MATCH (p:Pet {uuid: $pet}), (o:User {uuid: $owner})
WHERE NOT (o)-[:OWNS]->(p)
CREATE (o)-[w:OWNS {created_at: $at}]->(p)
RETURN count(w) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"pet":   petUUID,
		"owner": ownerUUID,
		"at":    timestamp(at),
	})
}

func (r *Neo4jRepository) DeleteOwner(ctx context.Context, petUUID, ownerUUID string) (bool, error) {
	query := `MATCH (o:User {uuid: $owner})-[w:OWNS]->(p:Pet {uuid: $pet})
DELETE w
RETURN count(w) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"pet":   petUUID,
		"owner": ownerUUID,
	})
}

func (r *Neo4jRepository) edgeOp(ctx context.Context, query string, params map[string]any) (bool, error) {
	result, err := r.db.Run(ctx, query, params)
	if err != nil {
		return false, err
	}
	if len(result.Records) == 0 {
		return false, nil
	}
	affected, _ := result.Records[0].Get("affected")
	count, ok := affected.(int64)
	return ok && count > 0, nil
}

func nodeToPet(node neo4j.Node) petdomain.Pet {
	props := node.Props
	return petdomain.Pet{
		UUID:      stringProp(props, "uuid"),
		Name:      stringProp(props, "name"),
		Breed:     stringProp(props, "breed"),
		Energy:    intProp(props, "energy"),
		Size:      petdomain.Size(stringProp(props, "size")),
		CreatedAt: timeProp(props, "created_at"),
		UpdatedAt: timeProp(props, "updated_at"),
	}
}

func nodeToUser(node neo4j.Node) userdomain.User {
	props := node.Props
	return userdomain.User{
		UUID:      stringProp(props, "uuid"),
		Email:     stringProp(props, "email"),
		Username:  stringProp(props, "username"),
		FullName:  stringProp(props, "full_name"),
		IsActive:  boolProp(props, "is_active"),
		CreatedAt: timeProp(props, "created_at"),
		UpdatedAt: timeProp(props, "updated_at"),
	}
}

func recordsToPets(records []*neo4j.Record) ([]petdomain.Pet, error) {
	pets := make([]petdomain.Pet, 0, len(records))
	for _, record := range records {
		node, err := nodeValue(record, "p")
		if err != nil {
			return nil, err
		}
		pets = append(pets, nodeToPet(node))
	}
	return pets, nil
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

func boolProp(props map[string]any, key string) bool {
	value, _ := props[key].(bool)
	return value
}

func intProp(props map[string]any, key string) int {
	switch value := props[key].(type) {
	case int64:
		return int(value)
	case float64:
		return int(value)
	default:
		return 0
	}
}

func timeProp(props map[string]any, key string) time.Time {
	value, _ := props[key].(string)
	parsed, _ := time.Parse(time.RFC3339Nano, value)
	return parsed
}
