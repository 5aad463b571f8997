package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"sheharfix-be/models"
	"sheharfix-be/store"
)

type AnalyticsController struct {
	Store store.Store
}

func NewAnalyticsController(s store.Store) *AnalyticsController {
	return &AnalyticsController{Store: s}
}

// GetAnalytics returns aggregate counts over all issues: totals, breakdowns
// by category and status, and daily submission counts for the last week.
func (anc *AnalyticsController) GetAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := anc.Store.ListIssues(ctx, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get analytics"})
		return
	}

	byCategory := map[string]int{}
	byStatus := map[string]int{}
	open := 0
	resolved := 0
	for _, issue := range issues {
		category := issue.Category
		if category == "" {
			category = "uncategorized"
		}
		byCategory[category]++
		byStatus[string(issue.Status)]++
		if issue.Status == models.StatusResolved {
			resolved++
		} else {
			open++
		}
	}

	type bucket struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	toBuckets := func(m map[string]int) []bucket {
		out := make([]bucket, 0, len(m))
		for name, value := range m {
			out = append(out, bucket{Name: name, Value: value})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
		return out
	}

	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		nextDate := date.AddDate(0, 0, 1)

		count := 0
		for _, issue := range issues {
			if !issue.CreatedAt.Before(date) && issue.CreatedAt.Before(nextDate) {
				count++
			}
		}
		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalIssues":      len(issues),
		"openIssues":       open,
		"resolvedIssues":   resolved,
		"issuesByCategory": toBuckets(byCategory),
		"issuesByStatus":   toBuckets(byStatus),
		"last7Days":        last7Days,
	})
}

// GetLeaderboard ranks reporters by how many issues they filed and how many
// of those were resolved. Anonymous reports are not counted.
func (anc *AnalyticsController) GetLeaderboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := anc.Store.ListIssues(ctx, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	type entry struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
		Reported int    `json:"reported"`
		Resolved int    `json:"resolved"`
	}

	byUser := map[string]*entry{}
	for _, issue := range issues {
		if issue.CreatedBy == nil {
			continue
		}
		e, ok := byUser[issue.CreatedBy.ID]
		if !ok {
			e = &entry{UserID: issue.CreatedBy.ID, Username: issue.CreatedBy.Username}
			byUser[issue.CreatedBy.ID] = e
		}
		e.Reported++
		if issue.Status == models.StatusResolved {
			e.Resolved++
		}
	}

	leaderboard := make([]entry, 0, len(byUser))
	for _, e := range byUser {
		leaderboard = append(leaderboard, *e)
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].Reported != leaderboard[j].Reported {
			return leaderboard[i].Reported > leaderboard[j].Reported
		}
		return leaderboard[i].Username < leaderboard[j].Username
	})
	if len(leaderboard) > 10 {
		leaderboard = leaderboard[:10]
	}

	c.JSON(http.StatusOK, leaderboard)
}
