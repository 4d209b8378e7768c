package model

import "time"

// Role identifies what a user is allowed to do in the scheduling app.
type Role string

const (
    RoleManager    Role = "MANAGER"    // manages shifts, users and the schedule
    RoleStaff      Role = "STAFF"      // streamer; registers availability, receives assignments
    RoleOperations Role = "OPERATIONS" // operations/support personnel
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
    return r == RoleManager || r == RoleStaff || r == RoleOperations
}

// Rank is the coarse seniority/performance tier used as the primary
// scheduling priority signal.  S is the highest tier, C the lowest.
// Only STAFF users carry a meaningful rank.
type Rank string

const (
    RankS Rank = "S"
    RankA Rank = "A"
    RankB Rank = "B"
    RankC Rank = "C"
)

// IsValid reports whether rk is one of the known ranks.
func (rk Rank) IsValid() bool {
    return rk == RankS || rk == RankA || rk == RankB || rk == RankC
}

// User represents a row in the `users` table.  The id doubles as the
// login name (an employee code picked by the manager), so it is a
// string rather than an auto-increment key.
//
// Fields:
//  ID                    – primary key / employee code.
//  Name                  – display name.
//  Role                  – MANAGER, STAFF or OPERATIONS.
//  Rank                  – seniority tier; nil for non-STAFF users.
//  PasswordHash          – bcrypt hashed password.
//  Revenue               – revenue figure used as the scheduling tie-break
//                          weight; nil when not tracked for this user.
//  NotifyPhone           – chat phone number for notifications (optional).
//  AvailabilitySubmitted – whether the user has submitted availability for
//                          the current week; reset by an explicit manager
//                          action at week boundaries.
//  CreatedAt / UpdatedAt – row timestamps.
type User struct {
    ID                    string     // users.id
    Name                  string     // users.name
    Role                  Role       // users.role
    Rank                  *Rank      // users.rank (nullable)
    PasswordHash          string     // users.password_hash
    Revenue               *int64     // users.revenue (nullable)
    NotifyPhone           *string    // users.notify_phone (nullable)
    AvailabilitySubmitted bool       // users.availability_submitted
    CreatedAt             time.Time  // users.created_at
    UpdatedAt             time.Time  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the raw token is stored.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    string     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
