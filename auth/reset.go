package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"kirana/db"
	"kirana/mailer"
	"kirana/models"
	"kirana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 10 * time.Minute

// ForgotPassword issues a short-lived OTP and mails it out. The mailer is
// injected so there is no process-wide transporter holding credentials.
func ForgotPassword(m *mailer.Mailer) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var input struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
			return
		}

		var user models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}

		token := utils.GenerateRandomHexString(6)
		expiry := time.Now().Add(resetTokenTTL)

		_, err := db.UserCollection.UpdateOne(ctx,
			bson.M{"userid": user.UserID},
			bson.M{"$set": bson.M{"reset_token": token, "reset_expiry": expiry}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store reset token")
			return
		}

		if err := m.Send(user.Email, "Password Reset OTP", mailer.ResetTokenBody(token)); err != nil {
			log.Printf("reset mail to %s failed: %v", user.Email, err)
			utils.RespondWithError(w, http.StatusBadGateway, "Error sending email")
			return
		}

		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "OTP sent to your email"})
	}
}

// ResetFilter matches an account whose OTP is valid right now: same email,
// same token, expiry still in the future.
func ResetFilter(email, token string, now time.Time) bson.M {
	return bson.M{
		"email":        email,
		"reset_token":  token,
		"reset_expiry": bson.M{"$gt": now},
	}
}

// ResetUpdate installs the new password hash and consumes the token.
func ResetUpdate(passwordHash string, now time.Time) bson.M {
	return bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": now},
		"$unset": bson.M{"reset_token": "", "reset_expiry": ""},
	}
}

// ResetPassword consumes the OTP in a single conditional update, so a token
// can never be replayed even under concurrent requests.
func ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email       string `json:"email"`
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.Email == "" || input.Token == "" || input.NewPassword == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email, token and new password are required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	now := time.Now()
	res, err := db.UserCollection.UpdateOne(ctx,
		ResetFilter(input.Email, input.Token, now),
		ResetUpdate(string(hashed), now),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Invalid or expired OTP")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset successfully"})
}
