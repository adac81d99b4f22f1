package user

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"pawtrails/internal/db"
	userdomain "pawtrails/internal/domain/user"
)

type Neo4jRepository struct {
	db *db.Client
}

func NewNeo4j(client *db.Client) *Neo4jRepository {
	return &Neo4jRepository{db: client}
}

func (r *Neo4jRepository) Create(ctx context.Context, u *userdomain.User) error {
	query := `CREATE (u:User {uuid: $uuid})
SET u += $props
RETURN u`

	_, err := r.db.Run(ctx, query, map[string]any{
		"uuid":  u.UUID,
		"props": userProps(u),
	})
	return err
}

func (r *Neo4jRepository) GetByUUID(ctx context.Context, uuid string) (*userdomain.User, error) {
	return r.getBy(ctx, "uuid", uuid)
}

func (r *Neo4jRepository) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *Neo4jRepository) GetByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	return r.getBy(ctx, "username", username)
}

// getBy looks a user up by a single property. The property name is taken
// from a fixed set, never from input; the value always travels as a
// parameter.
func (r *Neo4jRepository) getBy(ctx context.Context, property, value string) (*userdomain.User, error) {
	switch property {
	case "uuid", "email", "username":
	default:
		return nil, fmt.Errorf("unsupported lookup property %q", property)
	}

	query := fmt.Sprintf("MATCH (u:User {%s: $value})\nRETURN u", property)
	result, err := r.db.Run(ctx, query, map[string]any{"value": value})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, userdomain.ErrUserNotFound
	}

	node, err := nodeValue(result.Records[0], "u")
	if err != nil {
		return nil, err
	}
	u := nodeToUser(node)
	return &u, nil
}

func (r *Neo4jRepository) List(ctx context.Context, skip, limit int) ([]userdomain.User, error) {
	query := `MATCH (u:User)
RETURN u
ORDER BY u.created_at
SKIP $skip LIMIT $limit`

	result, err := r.db.Run(ctx, query, map[string]any{"skip": skip, "limit": limit})
	if err != nil {
		return nil, err
	}
	return recordsToUsers(result.Records)
}

func (r *Neo4jRepository) Update(ctx context.Context, u *userdomain.User) error {
	query := `MATCH (u:User {uuid: $uuid})
SET u += $props
RETURN u`

	result, err := r.db.Run(ctx, query, map[string]any{
		"uuid":  u.UUID,
		"props": userProps(u),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (r *Neo4jRepository) Delete(ctx context.Context, uuid string) error {
	query := `MATCH (u:User {uuid: $uuid})
DETACH DELETE u`

	_, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	return err
}

func (r *Neo4jRepository) CreateFollow(ctx context.Context, followerUUID, followeeUUID string, at time.Time) (bool, error) {
	query := `MATCH (a:User {uuid: $follower}), (b:User {uuid: $followee})
WHERE NOT (a)-[:FOLLOWS]->(b)
CREATE (a)-[f:FOLLOWS {created_at: $at}]->(b)
RETURN count(f) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"follower": followerUUID,
		"followee": followeeUUID,
		"at":       timestamp(at),
	})
}

func (r *Neo4jRepository) DeleteFollow(ctx context.Context, followerUUID, followeeUUID string) (bool, error) {
	query := `MATCH (a:User {uuid: $follower})-[f:FOLLOWS]->(b:User {uuid: $followee})
DELETE f
RETURN count(f) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"follower": followerUUID,
		"followee": followeeUUID,
	})
}

func (r *Neo4jRepository) Followers(ctx context.Context, uuid string) ([]userdomain.User, error) {
	query := `MATCH (u:User {uuid: $uuid})<-[:FOLLOWS]-(f:User)
RETURN f AS u`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	if err != nil {
		return nil, err
	}
	return recordsToUsers(result.Records)
}

func (r *Neo4jRepository) Following(ctx context.Context, uuid string) ([]userdomain.User, error) {
	query := `MATCH (u:User {uuid: $uuid})-[:FOLLOWS]->(f:User)
RETURN f AS u`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	if err != nil {
		return nil, err
	}
	return recordsToUsers(result.Records)
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

func userProps(u *userdomain.User) map[string]any {
	props := map[string]any{
		"email":      u.Email,
		"username":   u.Username,
		"password":   u.PasswordHash,
		"full_name":  u.FullName,
		"is_active":  u.IsActive,
		"created_at": timestamp(u.CreatedAt),
		"updated_at": timestamp(u.UpdatedAt),
	}
	if u.Home != nil {
		props["home_longitude"] = u.Home.Longitude
		props["home_latitude"] = u.Home.Latitude
	}
	return props
}

func nodeToUser(node neo4j.Node) userdomain.User {
	props := node.Props
	u := userdomain.User{
		UUID:         stringProp(props, "uuid"),
		Email:        stringProp(props, "email"),
		Username:     stringProp(props, "username"),
		PasswordHash: stringProp(props, "password"),
		FullName:     stringProp(props, "full_name"),
		IsActive:     boolProp(props, "is_active"),
		CreatedAt:    timeProp(props, "created_at"),
		UpdatedAt:    timeProp(props, "updated_at"),
	}
	if lon, ok := props["home_longitude"].(float64); ok {
		if lat, ok := props["home_latitude"].(float64); ok {
			u.Home = &userdomain.Point{Longitude: lon, Latitude: lat}
		}
	}
	return u
}

func recordsToUsers(records []*neo4j.Record) ([]userdomain.User, error) {
	users := make([]userdomain.User, 0, len(records))
	for _, record := range records {
		node, err := nodeValue(record, "u")
		if err != nil {
			return nil, err
		}
		users = append(users, nodeToUser(node))
	}
	return users, nil
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

func timeProp(props map[string]any, key string) time.Time {
	value, _ := props[key].(string)
	parsed, _ := time.Parse(time.RFC3339Nano, value)
	return parsed
}
