package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hiremeplz/hiremeplz/internal/config"
	"github.com/hiremeplz/hiremeplz/internal/server"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

var (
	tokenUserID string
	tokenTeamID string
	tokenRole   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a signed access token for local development",
	Long:  `Generate a JWT signed with the configured secret, for exercising authenticated endpoints with curl.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "User UUID (random if omitted)")
	tokenCmd.Flags().StringVar(&tokenTeamID, "team", "", "Team UUID (random if omitted)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(types.RoleOwner), "Role claim: owner or member")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	jwtConfig, err := cfg.JWT()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	userID := uuid.New()
	if tokenUserID != "" {
		if userID, err = uuid.Parse(tokenUserID); err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
	}
	teamID := uuid.New()
	if tokenTeamID != "" {
		if teamID, err = uuid.Parse(tokenTeamID); err != nil {
			return fmt.Errorf("invalid team id: %w", err)
		}
	}

	role := types.Role(tokenRole)
	if role != types.RoleOwner && role != types.RoleMember {
		return fmt.Errorf("invalid role %q", tokenRole)
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(types.AuthContext{
		UserID: userID,
		TeamID: teamID,
		Role:   role,
	})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
