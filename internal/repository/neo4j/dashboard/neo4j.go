package dashboard

import (
	"context"

	"pawtrails/internal/db"
	dashboarddomain "pawtrails/internal/domain/dashboard"
)

type Neo4jRepository struct {
	db *db.Client
}

func NewNeo4j(client *db.Client) *Neo4jRepository {
	return &Neo4jRepository{db: client}
}

// eventsQuery collects one branch per activity kind. Each branch scopes the
// actor to the requesting user or someone they follow, then projects the
// shared column set so UNION can merge them.
const eventsQuery = `MATCH (me:User {uuid: $uuid})
MATCH (actor:User)-[e:OWNS]->(p:Pet)
WHERE actor.uuid = $uuid OR (me)-[:FOLLOWS]->(actor)
RETURN actor.username AS actor, actor.uuid AS actor_uuid, 'owns' AS action, 'Pet' AS label, p.name AS name, e.created_at AS time, p.uuid AS target
UNION
MATCH (me:User {uuid: $uuid})
MATCH (actor:User)-[e:CREATED]->(l:Location)
WHERE actor.uuid = $uuid OR (me)-[:FOLLOWS]->(actor)
RETURN actor.username AS actor, actor.uuid AS actor_uuid, 'created' AS action, 'Location' AS label, l.name AS name, e.created_at AS time, l.uuid AS target
UNION
MATCH (me:User {uuid: $uuid})
MATCH (actor:User)-[e:FAVORITED]->(l:Location)
WHERE actor.uuid = $uuid OR (me)-[:FOLLOWS]->(actor)
RETURN actor.username AS actor, actor.uuid AS actor_uuid, 'favorited' AS action, 'Location' AS label, l.name AS name, e.created_at AS time, l.uuid AS target
UNION
MATCH (me:User {uuid: $uuid})
MATCH (actor:User)-[e:WROTE]->(r:Review)-[:FOR]->(l:Location)
WHERE actor.uuid = $uuid OR (me)-[:FOLLOWS]->(actor)
RETURN actor.username AS actor, actor.uuid AS actor_uuid, 'reviewed' AS action, 'Location' AS label, l.name AS name, e.created_at AS time, r.uuid AS target`

func (r *Neo4jRepository) Events(ctx context.Context, userUUID string) ([]dashboarddomain.Event, error) {
	result, err := r.db.Run(ctx, eventsQuery, map[string]any{"uuid": userUUID})
	if err != nil {
		return nil, err
	}

	events := make([]dashboarddomain.Event, 0, len(result.Records))
	for _, record := range result.Records {
		events = append(events, dashboarddomain.Event{
			Actor:      stringColumn(record.Get("actor")),
			ActorUUID:  stringColumn(record.Get("actor_uuid")),
			Action:     stringColumn(record.Get("action")),
			TargetKind: stringColumn(record.Get("label")),
			TargetName: stringColumn(record.Get("name")),
			Time:       stringColumn(record.Get("time")),
			TargetUUID: stringColumn(record.Get("target")),
		})
	}
	return events, nil
}

func stringColumn(value any, ok bool) string {
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}
