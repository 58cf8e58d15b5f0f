package model

import (
	"time"

	"github.com/google/uuid"
)

// TeamMember maps a subordinate operator to an owner's tenant. UserID is
// unique: an operator works for at most one tenant.
type TeamMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(10);not null"` // admin | cashier
	Status    string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time

	Profile *Profile `gorm:"foreignKey:UserID"`
}

// TeamInvitation is created when the invitee has no profile yet. Once they
// register, the pending invitation is converted into an active membership.
type TeamInvitation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"index;not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
}
