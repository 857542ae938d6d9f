package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is implemented by entities stored through the shared Mongo
// collection helper.
type Document interface {
	GetID() primitive.ObjectID
	BeforeInsert(now time.Time)
	BeforeUpdate(now time.Time)
}

func newIDIfZero(id primitive.ObjectID) primitive.ObjectID {
	if id.IsZero() {
		return primitive.NewObjectID()
	}
	return id
}

func (b *Book) GetID() primitive.ObjectID { return b.ID }
func (b *Book) BeforeInsert(now time.Time) {
	b.ID, b.CreatedAt, b.UpdatedAt = newIDIfZero(b.ID), now, now
}
func (b *Book) BeforeUpdate(now time.Time) { b.UpdatedAt = now }

func (e *Ebook) GetID() primitive.ObjectID { return e.ID }
func (e *Ebook) BeforeInsert(now time.Time) {
	e.ID, e.CreatedAt, e.UpdatedAt = newIDIfZero(e.ID), now, now
}
func (e *Ebook) BeforeUpdate(now time.Time) { e.UpdatedAt = now }

func (p *Poster) GetID() primitive.ObjectID { return p.ID }
func (p *Poster) BeforeInsert(now time.Time) {
	p.ID, p.CreatedAt, p.UpdatedAt = newIDIfZero(p.ID), now, now
}
func (p *Poster) BeforeUpdate(now time.Time) { p.UpdatedAt = now }

func (p *Program) GetID() primitive.ObjectID { return p.ID }
func (p *Program) BeforeInsert(now time.Time) {
	p.ID, p.CreatedAt, p.UpdatedAt = newIDIfZero(p.ID), now, now
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
func (p *Program) BeforeUpdate(now time.Time) {
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

func (i *ProgramImage) GetID() primitive.ObjectID { return i.ID }
func (i *ProgramImage) BeforeInsert(now time.Time) {
	i.ID, i.CreatedAt = newIDIfZero(i.ID), now
}
func (i *ProgramImage) BeforeUpdate(time.Time) {}

func (w *WebsiteContent) GetID() primitive.ObjectID { return w.ID }
func (w *WebsiteContent) BeforeInsert(now time.Time) {
	w.ID, w.CreatedAt, w.UpdatedAt = newIDIfZero(w.ID), now, now
}
func (w *WebsiteContent) BeforeUpdate(now time.Time) { w.UpdatedAt = now }

func (a *Application) GetID() primitive.ObjectID { return a.ID }
func (a *Application) BeforeInsert(now time.Time) {
	a.ID, a.CreatedAt, a.UpdatedAt = newIDIfZero(a.ID), now, now
}
func (a *Application) BeforeUpdate(now time.Time) { a.UpdatedAt = now }

func (u *User) GetID() primitive.ObjectID { return u.ID }
func (u *User) BeforeInsert(now time.Time) {
	u.ID, u.CreatedAt, u.UpdatedAt = newIDIfZero(u.ID), now, now
}
func (u *User) BeforeUpdate(now time.Time) { u.UpdatedAt = now }

// Orders recompute their totals on every save.
func (o *Order) GetID() primitive.ObjectID { return o.ID }
func (o *Order) BeforeInsert(now time.Time) {
	o.ID, o.CreatedAt, o.UpdatedAt = newIDIfZero(o.ID), now, now
	o.RecalculateTotals()
}
func (o *Order) BeforeUpdate(now time.Time) {
	o.UpdatedAt = now
	o.RecalculateTotals()
}

func (l *ActivityLog) GetID() primitive.ObjectID { return l.ID }
func (l *ActivityLog) BeforeInsert(now time.Time) {
	l.ID = newIDIfZero(l.ID)
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
}
func (l *ActivityLog) BeforeUpdate(time.Time) {}
