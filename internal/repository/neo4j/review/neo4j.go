package review

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"pawtrails/internal/db"
	locationdomain "pawtrails/internal/domain/location"
	reviewdomain "pawtrails/internal/domain/review"
	userdomain "pawtrails/internal/domain/user"
)

type Neo4jRepository struct {
	db *db.Client
}

func NewNeo4j(client *db.Client) *Neo4jRepository {
	return &Neo4jRepository{db: client}
}

func (r *Neo4jRepository) Create(ctx context.Context, rev *reviewdomain.Review, writerUUID, locationUUID string) error {
	query := `MATCH (u:User {uuid: $writer})
MATCH (l:Location {uuid: $location})
CREATE (rev:Review {uuid: $uuid, comment: $comment, grade: $grade, created_at: $created_at, updated_at: $updated_at})
CREATE (u)-[:WROTE {created_at: $created_at}]->(rev)
CREATE (rev)-[:FOR {created_at: $created_at}]->(l)
RETURN rev`

	result, err := r.db.Run(ctx, query, map[string]any{
		"writer":     writerUUID,
		"location":   locationUUID,
		"uuid":       rev.UUID,
		"comment":    rev.Comment,
		"grade":      rev.Grade,
		"created_at": timestamp(rev.CreatedAt),
		"updated_at": timestamp(rev.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		// Either endpoint may be missing; a review target is looked up
		// before its writer, so report the location first.
		if err := r.checkLocation(ctx, locationUUID); err != nil {
			return err
		}
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (r *Neo4jRepository) checkLocation(ctx context.Context, uuid string) error {
	result, err := r.db.Run(ctx, `MATCH (l:Location {uuid: $uuid}) RETURN l`, map[string]any{"uuid": uuid})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return locationdomain.ErrLocationNotFound
	}
	return nil
}

func (r *Neo4jRepository) GetByUUID(ctx context.Context, uuid string) (*reviewdomain.Review, error) {
	query := `MATCH (rev:Review {uuid: $uuid})
RETURN rev`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, reviewdomain.ErrReviewNotFound
	}

	node, err := nodeValue(result.Records[0], "rev")
	if err != nil {
		return nil, err
	}
	rev := nodeToReview(node)
	return &rev, nil
}

func (r *Neo4jRepository) ListForLocation(ctx context.Context, locationUUID string) ([]reviewdomain.Review, error) {
	query := `MATCH (rev:Review)-[:FOR]->(l:Location {uuid: $location})
RETURN rev
ORDER BY rev.created_at`

	result, err := r.db.Run(ctx, query, map[string]any{"location": locationUUID})
	if err != nil {
		return nil, err
	}
	return recordsToReviews(result.Records)
}

func (r *Neo4jRepository) ListByWriter(ctx context.Context, writerUUID string) ([]reviewdomain.Review, error) {
	query := `MATCH (u:User {uuid: $writer})-[:WROTE]->(rev:Review)
RETURN rev
ORDER BY rev.created_at`

	result, err := r.db.Run(ctx, query, map[string]any{"writer": writerUUID})
	if err != nil {
		return nil, err
	}
	return recordsToReviews(result.Records)
}

func (r *Neo4jRepository) Update(ctx context.Context, rev *reviewdomain.Review) error {
	query := `MATCH (rev:Review {uuid: $uuid})
SET rev.comment = $comment, rev.grade = $grade, rev.updated_at = $updated_at
RETURN rev`

	result, err := r.db.Run(ctx, query, map[string]any{
		"uuid":       rev.UUID,
		"comment":    rev.Comment,
		"grade":      rev.Grade,
		"updated_at": timestamp(rev.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return reviewdomain.ErrReviewNotFound
	}
	return nil
}

func (r *Neo4jRepository) Delete(ctx context.Context, uuid string) error {
	query := `MATCH (rev:Review {uuid: $uuid})
DETACH DELETE rev`

	_, err := r.db.Run(ctx, query, map[string]any{"uuid": uuid})
	return err
}

func (r *Neo4jRepository) Writer(ctx context.Context, reviewUUID string) (*userdomain.User, error) {
	query := `MATCH (u:User)-[:WROTE]->(rev:Review {uuid: $uuid})
RETURN u`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": reviewUUID})
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

func (r *Neo4jRepository) CreateWriter(ctx context.Context, reviewUUID, userUUID string, at time.Time) (bool, error) {
	query := `MATCH (rev:Review {uuid: $review}), (u:User {uuid: $user})
WHERE NOT (rev)<-[:WROTE]-()
CREATE (u)-[w:WROTE {created_at: $at}]->(rev)
RETURN count(w) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"review": reviewUUID,
		"user":   userUUID,
		"at":     timestamp(at),
	})
}

func (r *Neo4jRepository) LocationOf(ctx context.Context, reviewUUID string) (string, error) {
	query := `MATCH (rev:Review {uuid: $uuid})-[:FOR]->(l:Location)
RETURN l.uuid AS uuid`

	result, err := r.db.Run(ctx, query, map[string]any{"uuid": reviewUUID})
	if err != nil {
		return "", err
	}
	if len(result.Records) == 0 {
		return "", nil
	}
	value, _ := result.Records[0].Get("uuid")
	uuid, _ := value.(string)
	return uuid, nil
}

func (r *Neo4jRepository) CreateFor(ctx context.Context, reviewUUID, locationUUID string, at time.Time) (bool, error) {
	query := `MATCH (rev:Review {uuid: $review}), (l:Location {uuid: $location})
WHERE NOT (rev)-[:FOR]->()
CREATE (rev)-[f:FOR {created_at: $at}]->(l)
RETURN count(f) AS affected`

	return r.edgeOp(ctx, query, map[string]any{
		"review":   reviewUUID,
		"location": locationUUID,
		"at":       timestamp(at),
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

func nodeToReview(node neo4j.Node) reviewdomain.Review {
	props := node.Props
	return reviewdomain.Review{
		UUID:      stringProp(props, "uuid"),
		Comment:   stringProp(props, "comment"),
		Grade:     intProp(props, "grade"),
		CreatedAt: timeProp(props, "created_at"),
		UpdatedAt: timeProp(props, "updated_at"),
	}
}

func recordsToReviews(records []*neo4j.Record) ([]reviewdomain.Review, error) {
	reviews := make([]reviewdomain.Review, 0, len(records))
	for _, record := range records {
		node, err := nodeValue(record, "rev")
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, nodeToReview(node))
	}
	return reviews, nil
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
