package db

import (
	"context"
	"fmt"
)

var constraints = []string{
	"CREATE CONSTRAINT user_uuid IF NOT EXISTS FOR (u:User) REQUIRE u.uuid IS UNIQUE",
	"CREATE CONSTRAINT user_email IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
	"CREATE CONSTRAINT user_username IF NOT EXISTS FOR (u:User) REQUIRE u.username IS UNIQUE",
	"CREATE CONSTRAINT pet_uuid IF NOT EXISTS FOR (p:Pet) REQUIRE p.uuid IS UNIQUE",
	"CREATE CONSTRAINT location_uuid IF NOT EXISTS FOR (l:Location) REQUIRE l.uuid IS UNIQUE",
	"CREATE CONSTRAINT review_uuid IF NOT EXISTS FOR (r:Review) REQUIRE r.uuid IS UNIQUE",
	"CREATE CONSTRAINT tag_uuid IF NOT EXISTS FOR (t:Tag) REQUIRE t.uuid IS UNIQUE",
	"CREATE CONSTRAINT tag_name IF NOT EXISTS FOR (t:Tag) REQUIRE t.name IS UNIQUE",
}

// ApplySchema creates the uniqueness constraints the application relies on.
// Each statement is idempotent.
func (c *Client) ApplySchema(ctx context.Context) error {
	for _, statement := range constraints {
		if _, err := c.Run(ctx, statement, nil); err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}
