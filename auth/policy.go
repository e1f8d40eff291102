package auth

import (
	"blog-api/models"
)

// Policy decides what a verified identity may do. Every method returns nil
// to allow, models.ErrorUnauthenticated when there is no identity and
// models.ErrorForbidden otherwise.
type Policy struct{}

func (Policy) authenticated(id *Identity) error {
	if id == nil || id.UserID == 0 {
		return models.ErrorUnauthenticated{}
	}
	return nil
}

func (p Policy) CanModifyUser(id *Identity, targetUserID uint) error {
	if err := p.authenticated(id); err != nil {
		return err
	}
	if id.UserID == targetUserID || id.IsAdmin() {
		return nil
	}
	return models.ErrorForbidden{Message: "you can only modify your own account"}
}

func (p Policy) CanListUsers(id *Identity) error {
	if err := p.authenticated(id); err != nil {
		return err
	}
	if !id.IsAdmin() {
		return models.ErrorForbidden{Message: "only administrators can list users"}
	}
	return nil
}

// CanManagePosts covers create, update and delete.
func (p Policy) CanManagePosts(id *Identity) error {
	if err := p.authenticated(id); err != nil {
		return err
	}
	if !id.IsAdmin() {
		return models.ErrorForbidden{Message: "only administrators can manage posts"}
	}
	return nil
}

func (p Policy) CanCreateComment(id *Identity) error {
	return p.authenticated(id)
}

func (p Policy) CanModifyComment(id *Identity, comment *models.Comment) error {
	if err := p.authenticated(id); err != nil {
		return err
	}
	if comment.UserID == id.UserID || id.IsAdmin() {
		return nil
	}
	return models.ErrorForbidden{Message: "you can only modify your own comments"}
}
