package controllers

import (
	"github.com/gin-gonic/gin"
	"sojourn/internal/services"
	"sojourn/pkg/utils"
)

type SocialController struct {
	socialService services.SocialServiceInterface
}

func NewSocialController(socialService services.SocialServiceInterface) *SocialController {
	return &SocialController{socialService: socialService}
}

// SendFriendRequest godoc
// @Summary Send a friend request
// @Tags Social
// @Produce json
// @Param userId path string true "Recipient user ID"
// @Success 201 {object} response_models.FriendRequestResponse
// @Security BearerAuth
// @Router /social/friends/request/{userId} [post]
func (s *SocialController) SendFriendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipientID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	request, err := s.socialService.SendFriendRequest(c.Request.Context(), userID, recipientID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, request, "Friend request sent")
}

func (s *SocialController) AcceptFriendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := pathUUID(c, "requestId")
	if !ok {
		return
	}

	request, err := s.socialService.AcceptFriendRequest(c.Request.Context(), requestID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, request, "Friend request accepted")
}

func (s *SocialController) DeclineFriendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := pathUUID(c, "requestId")
	if !ok {
		return
	}

	if err := s.socialService.DeclineFriendRequest(c.Request.Context(), requestID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Friend request declined")
}

func (s *SocialController) ListPendingRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := s.socialService.ListPendingRequests(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, requests, "Pending requests fetched")
}

func (s *SocialController) ListFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	friends, err := s.socialService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, friends, "Friends fetched")
}

func (s *SocialController) RemoveFriend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	friendID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	if err := s.socialService.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Friend removed")
}

func (s *SocialController) MutualFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	otherID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	friends, err := s.socialService.MutualFriends(c.Request.Context(), userID, otherID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, friends, "Mutual friends fetched")
}
