package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mindjek007/XenForo-Scraper/internal/models"
	"github.com/mindjek007/XenForo-Scraper/internal/pattern"
)

var userIDRe = regexp.MustCompile(`/members/[^/]+\.(\d+)/?`)

// extractUser builds the author snapshot for one post. Username is the only
// required field; everything else is parsed independently and left nil when
// the markup lacks it.
func (e *Extractor) extractUser(container *goquery.Selection) models.User {
	// user details live in the message-user cell when the theme has one
	cell := container.Find("section.message-user, .message-user").First()
	if cell.Length() == 0 {
		cell = container
	}

	user := models.User{}

	elem := firstMatch(cell, e.selectorsFor(pattern.RoleAuthor))
	if elem == nil {
		elem = firstMatch(container, e.selectorsFor(pattern.RoleAuthor))
	}
	if elem == nil {
		return user
	}
	name := elem.First()
	user.Username = strings.TrimSpace(name.Text())

	if href := authorHref(name); href != "" {
		profile := e.resolveURL(href)
		user.ProfileURL = &profile
		if m := userIDRe.FindStringSubmatch(profile); m != nil {
			id := m[1]
			user.UserID = &id
		}
	}

	if title := userTitle(cell); title != "" {
		user.UserTitle = &title
	}

	user.Messages, user.ReactionScore, user.Points = userStats(cell)
	return user
}

// authorHref finds the profile link on or around the matched username
// element, whichever the theme uses.
func authorHref(name *goquery.Selection) string {
	if goquery.NodeName(name) == "a" {
		return name.AttrOr("href", "")
	}
	if a := name.Find("a").First(); a.Length() > 0 {
		return a.AttrOr("href", "")
	}
	if a := name.Closest("a"); a.Length() > 0 {
		return a.AttrOr("href", "")
	}
	return ""
}

func userTitle(cell *goquery.Selection) string {
	elem := cell.Find("h5[class*='userTitle'], span.userTitle").First()
	return strings.TrimSpace(elem.Text())
}

// userStats reads the numeric <dd> stats in display order: messages,
// reaction score, points. Non-numeric cells are skipped.
func userStats(cell *goquery.Selection) (messages, reactionScore, points *int) {
	var values []int
	cell.Find("dd").Each(func(_ int, dd *goquery.Selection) {
		text := strings.ReplaceAll(strings.TrimSpace(dd.Text()), ",", "")
		if text == "" {
			return
		}
		if n, err := strconv.Atoi(text); err == nil {
			values = append(values, n)
		}
	})

	if len(values) > 0 {
		messages = &values[0]
	}
	if len(values) > 1 {
		reactionScore = &values[1]
	}
	if len(values) > 2 {
		points = &values[2]
	}
	return messages, reactionScore, points
}
