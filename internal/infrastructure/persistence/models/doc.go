// Package models contains GORM persistence models for the render tables.
// Domain types in internal/domain/document carry no ORM tags; the models here
// hold the table mapping and convert to and from the domain with ToDomain/FromDomain.
package models
