package main

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kpereira/painel/internal/model"
)

const memberKey = "member"

func getTokenAuth(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")

		if token == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		uid := app.sessions.MemberUID(token)
		if uid == "" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		m := app.dbm.MemberQuery().UID(uid).One()
		if m == nil {
			app.sessions.Close(token)

			return c.SendStatus(fiber.StatusUnauthorized)
		}

		c.Locals(memberKey, m)

		return c.Next()
	}
}

// Member returns the session's member, nil outside authorized routes.
func Member(c *fiber.Ctx) *model.Member {
	if m, ok := c.Locals(memberKey).(*model.Member); ok {
		return m
	}

	return nil
}

func Username(c *fiber.Ctx) string {
	if m := Member(c); m != nil {
		return m.UID
	}

	return ""
}

func getProfilesHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ms := app.dbm.MemberQuery().Get()

		// login picker goes by seniority
		sort.SliceStable(ms, func(i, j int) bool {
			return ms[i].RankValue() < ms[j].RankValue()
		})

		res := make([]*model.ProfileDTO, 0, len(ms))
		for _, m := range ms {
			res = append(res, m.Profile())
		}

		return ctx.JSON(res)
	}
}

type loginRequest struct {
	UID      string `json:"uid"`
	Password string `json:"password"`
	// first-access only
	NewPassword string `json:"new_password,omitempty"`
	NoPassword  bool   `json:"no_password,omitempty"`
}

type loginResponse struct {
	Token  string           `json:"token"`
	Member *model.MemberDTO `json:"member"`
}

func getLoginHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(loginRequest)

		if err := ctx.BodyParser(req); err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}

		m := app.dbm.MemberQuery().UID(req.UID).One()
		if m == nil {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		if !m.HasPassword() {
			// first access: register a password or opt out
			switch {
			case req.NoPassword:
				m.DisablePassword()
			case req.NewPassword != "":
				if err := m.SetPassword(req.NewPassword); err != nil {
					return err
				}
			default:
				return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"first_access": true})
			}

			if err := app.dbm.Save(m); err != nil {
				return err
			}
		} else if !m.CheckPassword(req.Password) {
			loginsMetric.WithLabelValues("denied").Inc()

			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		loginsMetric.WithLabelValues("ok").Inc()

		token := app.sessions.Open(m.UID)
		traveling := app.missions.Traveling(m.UID, timeNow())

		return ctx.JSON(&loginResponse{Token: token, Member: m.DTO(traveling)})
	}
}

func getLogoutHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := strings.TrimPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer ")

		if token != "" {
			app.sessions.Close(token)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}
