package models

import (
	"github.com/lib/pq"

	"github.com/mandi/backend/internal/domain/identity"
)

// UserModel is the persistence model for commission-agent accounts
type UserModel struct {
	AggregateModel
	CompanyName  string         `gorm:"size:200;not null"`
	Email        string         `gorm:"size:200;not null;uniqueIndex"`
	Mobile       string         `gorm:"size:20;not null"`
	Address      string         `gorm:"size:500"`
	PasswordHash string         `gorm:"size:100;not null"`
	Partners     pq.StringArray `gorm:"type:text[]"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CompanyName:       m.CompanyName,
		Email:             m.Email,
		Mobile:            m.Mobile,
		Address:           m.Address,
		PasswordHash:      m.PasswordHash,
		Partners:          []string(m.Partners),
	}
}

// FromDomain populates UserModel from a domain User
func (m *UserModel) FromDomain(user *identity.User) {
	m.FromDomainAggregateRoot(user.BaseAggregateRoot)
	m.CompanyName = user.CompanyName
	m.Email = user.Email
	m.Mobile = user.Mobile
	m.Address = user.Address
	m.PasswordHash = user.PasswordHash
	m.Partners = pq.StringArray(user.Partners)
}
