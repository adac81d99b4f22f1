package location

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"pawtrails/internal/db"
	locationdomain "pawtrails/internal/domain/location"
	tagdomain "pawtrails/internal/domain/tag"
	userdomain "pawtrails/internal/domain/user"
)

type Neo4jRepository struct {
	db *db.Client
}

func NewNeo4j(client *db.Client) *Neo4jRepository {
	return &Neo4jRepository{db: client}
}

func (r *Neo4jRepository) Create(ctx context.Context, l *locationdomain.Location, creatorUUID string) error {
	query := `MATCH (c:User {uuid: $creator})
CREATE (l:Location {uuid: $uuid, name: $name, description: $description, type: $type, size: $size, longitude: $longitude, latitude: $latitude, created_at: $created_at, updated_at: $updated_at})
CREATE (c)-[:CREATED {created_at: $created_at}]->(l)
RETURN l`

	result, err := r.db.Run(ctx, query, map[string]any{
		"creator":     creatorUUID,
		"uuid":        l.UUID,
		"name":        l.Name,
		"description": l.Description,
		"type":        string(l.Type),
		"size":        string(l.Size),
		"longitude":   l.Point.Longitude,
		"latitude":    l.Point.Latitude,
		"created_at":  timestamp(l.CreatedAt),
		"updated_at":  timestamp(l.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (r *Neo4jRepository) GetByUUID(ctx context.Context, uuid string) (*locationdomain.Location, error) {
	query := `MATCH (l:Location {uuid: $uuid})
OPTIONAL MATCH (l)<-[:FOR]-(r:Review)
RETURN l, coalesce(avg(r.grade), 0.0) AS grade`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, locationdomain.ErrLocationNotFound
	}

	l, err := recordToLocation(result.Records[0])
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Neo4jRepository) List(ctx context.Context, skip, limit int) ([]locationdomain.Location, error) {
	query := `MATCH (l:Location)
OPTIONAL MATCH (l)<-[:FOR]-(r:Review)
WITH l, coalesce(avg(r.grade), 0.0) AS grade
ORDER BY l.created_at
SKIP $skip LIMIT $limit
RETURN l, grade`

	result, err := r.db.Run(ctx, query, map[string]any{"skip": skip, "limit": limit})
	if err != nil {
		return nil, err
	}
	return recordsToLocations(result.Records)
}

func (r *Neo4jRepository) ListByCreator(ctx context.Context, creatorUUID string) ([]locationdomain.Location, error) {
	query := `MATCH (c:User {uuid: $user})-[:CREATED]->(l:Location)
OPTIONAL MATCH (l)<-[:FOR]-(r:Review)
WITH l, coalesce(avg(r.grade), 0.0) AS grade
ORDER BY l.created_at
RETURN l, grade`

	result, err := r.db.Run(ctx, query, map[string]any{"user": creatorUUID})
	if err != nil {
		return nil, err
	}
	return recordsToLocations(result.Records)
}

func (r *Neo4jRepository) ListFavoritedBy(ctx context.Context, userUUID string) ([]locationdomain.Location, error) {
	query := `MATCH (u:User {uuid: $user})-[:FAVORITED]->(l:Location)
OPTIONAL MATCH (l)<-[:FOR]-(r:Review)
WITH l, coalesce(avg(r.grade), 0.0) AS grade
ORDER BY l.created_at
RETURN l, grade`

	result, err := r.db.Run(ctx, query, map[string]any{"user": userUUID})
	if err != nil {
		return nil, err
	}
	return recordsToLocations(result.Records)
}

func (r *Neo4jRepository) Update(ctx context.Context, l *locationdomain.Location) error {
	query := `MATCH (l:Location {uuid: $uuid})
SET l.name = $name, l.description = $description, l.type = $type, l.size = $size, l.longitude = $longitude, l.latitude = $latitude, l.updated_at = $updated_at
RETURN l`

	result, err := r.db.Run(ctx, query, map[string]any{
		"uuid":        l.UUID,
		"name":        l.Name,
		"description": l.Description,
		"type":        string(l.Type),
		"size":        string(l.Size),
		"longitude":   l.Point.Longitude,
		"latitude":    l.Point.Latitude,
		"updated_at":  timestamp(l.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return locationdomain.ErrLocationNotFound
	}
	return nil
}

func (r *Neo4jRepository) Delete(ctx context.Context, uuid string) error {
	query := `MATCH (l:Location {uuid: $uuid})
OPTIONAL MATCH (l)<-[:FOR]-(rev:Review)
DETACH DELETE rev, l`

	_, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	return err
}

// Search applies the AND-combined filter set. The query skeleton is
// assembled from fixed fragments; every value travels as a parameter.
func (r *Neo4jRepository) Search(ctx context.Context, opts locationdomain.SearchOptions) ([]locationdomain.Location, error) {
	var builder strings.Builder
	params := map[string]any{
		"skip":  opts.Skip,
		"limit": opts.Limit,
	}

	builder.WriteString("MATCH (l:Location)\n")
	if opts.User != nil {
		params["scope_user"] = opts.User.UUID
		if opts.User.Created {
			builder.WriteString("MATCH (:User {uuid: $scope_user})-[:CREATED]->(l)\n")
		}
		if opts.User.Favorited {
			builder.WriteString("MATCH (:User {uuid: $scope_user})-[:FAVORITED]->(l)\n")
		}
	}
	builder.WriteString("OPTIONAL MATCH (l)<-[:FOR]-(r:Review)\n")
	builder.WriteString("WITH l, coalesce(avg(r.grade), 0.0) AS grade\n")

	var conditions []string
	if opts.Name != "" {
		conditions = append(conditions, "toLower(l.name) CONTAINS toLower($name)")
		params["name"] = opts.Name
	}
	if opts.Type != "" {
		conditions = append(conditions, "l.type = $type")
		params["type"] = string(opts.Type)
	}
	if opts.Size != "" {
		conditions = append(conditions, "l.size = $size")
		params["size"] = string(opts.Size)
	}
	if opts.MinGrade > 0 {
		conditions = append(conditions, "grade >= $grade")
		params["grade"] = opts.MinGrade
	}
	if opts.Distance != nil {
		conditions = append(conditions,
			"point.distance(point({longitude: l.longitude, latitude: l.latitude}), point({longitude: $lon, latitude: $lat})) <= $max_meters")
		params["lon"] = opts.Distance.Longitude
		params["lat"] = opts.Distance.Latitude
		params["max_meters"] = opts.Distance.MaxKm * 1000
	}
	if len(conditions) > 0 {
		builder.WriteString("WHERE ")
		builder.WriteString(strings.Join(conditions, "\n  AND "))
		builder.WriteString("\n")
	}

	builder.WriteString("RETURN l, grade\nORDER BY l.created_at\nSKIP $skip LIMIT $limit")

	result, err := r.db.Run(ctx, builder.String(), params)
	if err != nil {
		return nil, err
	}
	return recordsToLocations(result.Records)
}

func (r *Neo4jRepository) Creator(ctx context.Context, locationUUID string) (*userdomain.User, error) {
	query := `MATCH (l:Location {uuid: $uuid})<-[:CREATED]-(u:User)
RETURN u`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": locationUUID})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, nil
	}

	node, err := nodeValue(result.Records[0], "u")
	if err != nil {
		return nil, err
	}
	u := nodeToUser(node)
	return &u, nil
}

func (r *Neo4jRepository) CreateCreator(ctx context.Context, locationUUID, userUUID string, at time.Time) (bool, error) {
	query := `MATCH (l:Location {uuid: $location}), (u:User {uuid: $user})
WHERE NOT (l)<-[:CREATED]-()
CREATE (u)-[c:CREATED {created_at: $at}]->(l)
RETURN count(c) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"location": locationUUID,
		"user":     userUUID,
		"at":       timestamp(at),
	})
}

func (r *Neo4jRepository) DeleteCreator(ctx context.Context, locationUUID, userUUID string) (bool, error) {
	query := `MATCH (u:User {uuid: $user})-[c:CREATED]->(l:Location {uuid: $location})
DELETE c
RETURN count(c) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"location": locationUUID,
		"user":     userUUID,
	})
}

func (r *Neo4jRepository) Tags(ctx context.Context, locationUUID string) ([]tagdomain.Tag, error) {
	query := `MATCH (l:Location {uuid: $uuid})-[:TAGGED_AS]->(t:Tag)
RETURN t
ORDER BY t.name`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": locationUUID})
	if err != nil {
		return nil, err
	}

	tags := make([]tagdomain.Tag, 0, len(result.Records))
	for _, record := range result.Records {
		node, err := nodeValue(record, "t")
		if err != nil {
			return nil, err
		}
		tags = append(tags, tagdomain.Tag{
			UUID:      stringProp(node.Props, "uuid"),
			Name:      stringProp(node.Props, "name"),
			Color:     tagdomain.Color(stringProp(node.Props, "color")),
			CreatedAt: timeProp(node.Props, "created_at"),
			UpdatedAt: timeProp(node.Props, "updated_at"),
		})
	}
	return tags, nil
}

func (r *Neo4jRepository) CreateTag(ctx context.Context, locationUUID, tagUUID string, at time.Time) (bool, error) {
	query := `MATCH (l:Location {uuid: $location}), (t:Tag {uuid: $tag})
WHERE NOT (l)-[:TAGGED_AS]->(t)
CREATE (l)-[g:TAGGED_AS {created_at: $at}]->(t)
RETURN count(g) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"location": locationUUID,
		"tag":      tagUUID,
		"at":       timestamp(at),
	})
}

func (r *Neo4jRepository) DeleteTag(ctx context.Context, locationUUID, tagUUID string) (bool, error) {
	query := `MATCH (l:Location {uuid: $location})-[g:TAGGED_AS]->(t:Tag {uuid: $tag})
DELETE g
RETURN count(g) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"location": locationUUID,
		"tag":      tagUUID,
	})
}

func (r *Neo4jRepository) Favorites(ctx context.Context, locationUUID string) ([]userdomain.User, error) {
	query := `MATCH (l:Location {uuid: $uuid})<-[:FAVORITED]-(u:User)
RETURN u`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": locationUUID})
	if err != nil {
		return nil, err
	}

	users := make([]userdomain.User, 0, len(result.Records))
	for _, record := range result.Records {
		node, err := nodeValue(record, "u")
		if err != nil {
			return nil, err
		}
		users = append(users, nodeToUser(node))
	}
	return users, nil
}

func (r *Neo4jRepository) CreateFavorite(ctx context.Context, locationUUID, userUUID string, at time.Time) (bool, error) {
	query := `MATCH (l:Location {uuid: $location}), (u:User {uuid: $user})
WHERE NOT (u)-[:FAVORITED]->(l)
CREATE (u)-[f:FAVORITED {created_at: $at}]->(l)
RETURN count(f) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"location": locationUUID,
		"user":     userUUID,
		"at":       timestamp(at),
	})
}

func (r *Neo4jRepository) DeleteFavorite(ctx context.Context, locationUUID, userUUID string) (bool, error) {
	query := `MATCH (u:User {uuid: $user})-[f:FAVORITED]->(l:Location {uuid: $location})
DELETE f
RETURN count(f) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"location": locationUUID,
		"user":     userUUID,
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

func recordToLocation(record *neo4j.Record) (locationdomain.Location, error) {
	node, err := nodeValue(record, "l")
	if err != nil {
		return locationdomain.Location{}, err
	}

	props := node.Props
	l := locationdomain.Location{
		UUID:        stringProp(props, "uuid"),
		Name:        stringProp(props, "name"),
		Description: stringProp(props, "description"),
		Type:        locationdomain.Type(stringProp(props, "type")),
		Size:        locationdomain.Size(stringProp(props, "size")),
		Point: locationdomain.Point{
			Longitude: floatProp(props, "longitude"),
			Latitude:  floatProp(props, "latitude"),
		},
		CreatedAt: timeProp(props, "created_at"),
		UpdatedAt: timeProp(props, "updated_at"),
	}

	if grade, ok := record.Get("grade"); ok {
		switch value := grade.(type) {
		case float64:
			l.Grade = value
		case int64:
			l.Grade = float64(value)
		}
	}
	return l, nil
}

func recordsToLocations(records []*neo4j.Record) ([]locationdomain.Location, error) {
	locations := make([]locationdomain.Location, 0, len(records))
	for _, record := range records {
		l, err := recordToLocation(record)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, nil
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

func floatProp(props map[string]any, key string) float64 {
	switch value := props[key].(type) {
	case float64:
		return value
	case int64:
		return float64(value)
	default:
		return 0
	}
}

func timeProp(props map[string]any, key string) time.Time {
	value, _ := props[key].(string)
	parsed, _ := time.Parse(time.RFC3339Nano, value)
	return parsed
}
