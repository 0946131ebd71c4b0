package devserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// sessionResponse is the shape the client consumes from login and register.
func (s *Server) sessionResponse(a *account) (gin.H, error) {
	token, err := s.mintToken(a)
	if err != nil {
		return nil, err
	}
	refresh, err := s.mintRefresh(a.Username)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"username":     a.Username,
		"email":        a.Email,
		"role":         a.Role,
		"userId":       a.ID,
		"token":        token,
		"refreshToken": refresh,
	}, nil
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[req.Username]
	if !ok || a.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	resp, err := s.sessionResponse(a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Username]; exists {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}
	s.nextUser++
	a := &account{
		ID:       fmt.Sprintf("u-%d", s.nextUser),
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     "USER",
	}
	s.accounts[req.Username] = a

	resp, err := s.sessionResponse(a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.refresh[req.RefreshToken]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	a, ok := s.accounts[username]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	token, err := s.mintToken(a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// handleLogout drops the caller's refresh tokens when the bearer token
// parses; an unauthenticated logout still answers 200 so the client's
// best-effort notify never errors needlessly.
func (s *Server) handleLogout(c *gin.Context) {
	if claims, err := s.bearerClaims(c); err == nil {
		username, _ := claims["username"].(string)
		s.mu.Lock()
		for token, owner := range s.refresh {
			if owner == username {
				delete(s.refresh, token)
			}
		}
		s.mu.Unlock()
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
