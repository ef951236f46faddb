// Package resources holds the static knowledge base of reference links used
// by the report synthesizer to attach learning material to knowledge gaps.
package resources

import (
	"fmt"
	"sort"
	"strings"
)

// TopicLinks maps roadmap topics to reference documentation.
var TopicLinks = map[string]string{
	// Python
	"python_basics":         "https://docs.python.org/3/tutorial/index.html",
	"python_datastructures": "https://docs.python.org/3/tutorial/datastructures.html",
	"python_async":          "https://docs.python.org/3/library/asyncio.html",
	"python_gil":            "https://realpython.com/python-gil/",
	"python_gc":             "https://devguide.python.org/internals/garbage-collector/",

	// Django
	"django_intro":        "https://docs.djangoproject.com/en/stable/intro/",
	"django_models":       "https://docs.djangoproject.com/en/stable/topics/db/models/",
	"django_orm":          "https://docs.djangoproject.com/en/stable/topics/db/queries/",
	"django_optimization": "https://docs.djangoproject.com/en/stable/topics/db/optimization/",
	"django_drf":          "https://www.django-rest-framework.org/",

	// Databases
	"sql_joins":        "https://www.postgresqltutorial.com/postgresql-tutorial/postgresql-joins/",
	"postgres_indexes": "https://www.postgresql.org/docs/current/indexes.html",
	"acid":             "https://habr.com/ru/articles/555920/",
	"redis":            "https://redis.io/docs/latest/develop/get-started/",

	// DevOps & Tools
	"docker":        "https://docs.docker.com/get-started/",
	"git":           "https://git-scm.com/book/ru/v2",
	"celery":        "https://docs.celeryq.dev/en/stable/getting-started/",
	"microservices": "https://microservices.io/",
}

// String renders the link table for embedding into the report prompt, one
// "- topic: url" line per entry, sorted for a stable prompt.
func String() string {
	topics := make([]string, 0, len(TopicLinks))
	for topic := range TopicLinks {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	var lines []string
	for _, topic := range topics {
		lines = append(lines, fmt.Sprintf("- %s: %s", topic, TopicLinks[topic]))
	}
	return strings.Join(lines, "\n")
}
