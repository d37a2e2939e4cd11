// file: model/response.go

package model

const MessageSuccess = "success"

// SuccessResponse is the plain success envelope.
type SuccessResponse struct {
	Message string `json:"message"`
}

// LoginResponse carries everything the game client keeps on screen after a
// login, plus the access token it holds in memory. The refresh token is
// never part of the body; it travels only in the session cookie.
type LoginResponse struct {
	Nickname    string `json:"nickname"`
	Picture     string `json:"picture"`
	Level       int    `json:"level"`
	Experience  int    `json:"experience"`
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

// ProfileResponse mirrors the account minus secrets. Email and KakaoID are
// both present so password and Kakao users share one shape.
type ProfileResponse struct {
	Email      string `json:"email,omitempty"`
	KakaoID    string `json:"kakaoId,omitempty"`
	Nickname   string `json:"nickname"`
	Picture    string `json:"picture"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
}

type ExperienceResponse struct {
	Nickname   string `json:"nickname"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	Message    string `json:"message"`
}

// RankingEntry is one row of the top-ten leaderboard.
type RankingEntry struct {
	Nickname   string `json:"nickname"`
	Picture    string `json:"picture"`
	Experience int    `json:"experience"`
}
