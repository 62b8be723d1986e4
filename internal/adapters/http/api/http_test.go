package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/colleges"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/http/api"
	service "github.com/aakritiieee7/hrmanagementsystem/internal/app"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type matchBody struct {
	Mentor struct {
		ID string `json:"id"`
	} `json:"mentor"`
	Score int `json:"score"`
}

type internBody struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Skills   []string `json:"skills"`
	EndDate  string   `json:"endDate"`
	Status   string   `json:"status"`
	MentorID *string  `json:"mentorId"`
}

func newMux(svc *service.Service, opts ...api.Option) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc, opts...).Register(context.Background(), mux)
	return mux
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func upload(mux http.Handler, filename string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("resume", filename)
	_, _ = part.Write(data)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/resume/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	_ = json.Unmarshal(w.Body.Bytes(), &v)
	return v
}

const intakeJSON = `{
	"name": "Asha Rao",
	"email": "Asha@Example.com",
	"phoneNumber": "9876543210",
	"university": "IIT Delhi",
	"department": "Computer Science",
	"startDate": "2026-01-01",
	"duration": "6w",
	"resumeText": "Built a React dashboard backed by SQL"
}`

func seedMentors(mux http.Handler) {
	do(mux, http.MethodPost, "/mentors", `{"id":"m1","name":"Meera","skills":["React","Node.js"]}`)
	do(mux, http.MethodPost, "/mentors", `{"id":"m2","name":"Ravi","skills":["SQL"]}`)
	do(mux, http.MethodPost, "/mentors", `{"id":"m3","name":"Kiran","skills":["Java"]}`)
}

func TestInternWorkflowEndpoints(t *testing.T) {
	Convey("Given an API backed by an in-memory service", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		mux := newMux(svc)
		seedMentors(mux)

		Convey("When an intern is submitted with résumé text", func() {
			w := do(mux, http.MethodPost, "/interns", intakeJSON)

			Convey("Then it should be created with ranked suggestions", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				body := decode[struct {
					Intern      internBody  `json:"intern"`
					Suggestions []matchBody `json:"suggestions"`
				}](w)
				So(body.Intern.Email, ShouldEqual, "asha@example.com")
				So(body.Intern.Skills, ShouldContain, "React")
				So(body.Intern.Skills, ShouldContain, "SQL")
				So(body.Intern.EndDate, ShouldEqual, "2026-02-12")
				So(body.Intern.Status, ShouldEqual, "unassigned")
				So(body.Intern.MentorID, ShouldBeNil)
				So(len(body.Suggestions), ShouldEqual, 2)
				So(body.Suggestions[0].Mentor.ID, ShouldEqual, "m2")
				So(body.Suggestions[0].Score, ShouldEqual, 100)
				So(body.Suggestions[1].Mentor.ID, ShouldEqual, "m1")
				So(body.Suggestions[1].Score, ShouldEqual, 50)
			})

			Convey("Then a second submission with the same email should conflict", func() {
				w := do(mux, http.MethodPost, "/interns", intakeJSON)
				So(w.Code, ShouldEqual, http.StatusConflict)
				So(decode[errorBody](w).Code, ShouldEqual, "duplicate_email")
			})

			Convey("Then it should be listed as unassigned", func() {
				w := do(mux, http.MethodGet, "/interns?status=unassigned", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				body := decode[struct {
					Interns []internBody `json:"interns"`
				}](w)
				So(len(body.Interns), ShouldEqual, 1)

				w = do(mux, http.MethodGet, "/interns?status=assigned", "")
				So(len(decode[struct {
					Interns []internBody `json:"interns"`
				}](w).Interns), ShouldEqual, 0)
			})

			Convey("Then choosing a mentor should assign it", func() {
				w := do(mux, http.MethodPost, "/assignments", `{"email":"asha@example.com","mentor_id":"m1"}`)
				So(w.Code, ShouldEqual, http.StatusOK)
				in := decode[internBody](w)
				So(in.Status, ShouldEqual, "assigned")
				So(*in.MentorID, ShouldEqual, "m1")

				Convey("And choosing the same mentor again should succeed", func() {
					w := do(mux, http.MethodPost, "/assignments", `{"email":"asha@example.com","mentor_id":"m1"}`)
					So(w.Code, ShouldEqual, http.StatusOK)
				})

				Convey("And choosing a different mentor should conflict", func() {
					w := do(mux, http.MethodPost, "/assignments", `{"email":"asha@example.com","mentor_id":"m2"}`)
					So(w.Code, ShouldEqual, http.StatusConflict)
					So(decode[errorBody](w).Code, ShouldEqual, "already_assigned")
				})

				Convey("And an explicit reassign should move the intern", func() {
					w := do(mux, http.MethodPost, "/interns/"+in.ID+"/reassign", `{"mentor_id":"m2"}`)
					So(w.Code, ShouldEqual, http.StatusOK)
					So(*decode[internBody](w).MentorID, ShouldEqual, "m2")
				})
			})

			Convey("Then suggestions can be requested again", func() {
				id := decode[struct {
					Intern internBody `json:"intern"`
				}](w).Intern.ID
				w := do(mux, http.MethodGet, "/interns/"+id+"/suggestions", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				body := decode[struct {
					InternID    string      `json:"internId"`
					Suggestions []matchBody `json:"suggestions"`
				}](w)
				So(body.InternID, ShouldEqual, id)
				So(len(body.Suggestions), ShouldEqual, 2)
			})

			Convey("Then skills can be refreshed from new text", func() {
				id := decode[struct {
					Intern internBody `json:"intern"`
				}](w).Intern.ID
				w := do(mux, http.MethodPut, "/interns/"+id+"/skills", `{"resumeText":"Java and Python"}`)
				So(w.Code, ShouldEqual, http.StatusOK)
				in := decode[internBody](w)
				So(in.Skills, ShouldContain, "Java")
				So(in.Skills, ShouldNotContain, "React")
			})
		})

		Convey("When the intake form is invalid", func() {
			w := do(mux, http.MethodPost, "/interns", `{"name":"","email":"nope","duration":"3w"}`)

			Convey("Then it should be rejected with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode[errorBody](w).Code, ShouldEqual, "invalid_intake")
			})
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/interns", `{`)

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode[errorBody](w).Code, ShouldEqual, "bad_request")
			})
		})

		Convey("When assigning an unknown intern", func() {
			w := do(mux, http.MethodPost, "/assignments", `{"email":"ghost@example.com","mentor_id":"m1"}`)

			Convey("Then it should be not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decode[errorBody](w).Code, ShouldEqual, "not_found")
			})
		})

		Convey("When the assignment body is incomplete", func() {
			w := do(mux, http.MethodPost, "/assignments", `{"email":"a@x.com"}`)

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode[errorBody](w).Message, ShouldContainSubstring, "mentor_id")
			})
		})

		Convey("When the status filter is unknown", func() {
			w := do(mux, http.MethodGet, "/interns?status=retired", "")

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When an unknown intern is fetched", func() {
			w := do(mux, http.MethodGet, "/interns/nope", "")

			Convey("Then it should be not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When a route is called with the wrong method", func() {
			So(do(mux, http.MethodDelete, "/interns", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodGet, "/assignments", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodPost, "/stats", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestReassignDisabled(t *testing.T) {
	Convey("Given a service with reassignment disabled", t, func() {
		svc := service.New(service.WithAllowReassign(false))
		mux := newMux(svc)
		seedMentors(mux)
		w := do(mux, http.MethodPost, "/interns", intakeJSON)
		id := decode[struct {
			Intern internBody `json:"intern"`
		}](w).Intern.ID

		Convey("When a reassign is requested", func() {
			w := do(mux, http.MethodPost, "/interns/"+id+"/reassign", `{"mentor_id":"m2"}`)

			Convey("Then it should be forbidden", func() {
				So(w.Code, ShouldEqual, http.StatusForbidden)
				So(decode[errorBody](w).Code, ShouldEqual, "reassign_disabled")
			})
		})
	})
}

func TestResumeExtractEndpoint(t *testing.T) {
	Convey("Given the résumé endpoint", t, func() {
		mux := newMux(service.New(), api.WithMaxResumeBytes(64))

		Convey("When a text résumé is uploaded", func() {
			w := upload(mux, "cv.txt", []byte("Python, Docker and SQL"))

			Convey("Then its skills should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := decode[service.ResumeResult](w)
				So(body.Skills, ShouldContain, "Python")
				So(body.Skills, ShouldContain, "SQL")
				So(body.Count, ShouldEqual, len(body.Skills))
			})
		})

		Convey("When an unsupported file is uploaded", func() {
			w := upload(mux, "photo.png", []byte{0x89, 'P', 'N', 'G', 0x00, 0x01})

			Convey("Then it should be unprocessable", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(decode[errorBody](w).Code, ShouldEqual, "extraction_error")
			})
		})

		Convey("When the file exceeds the cap", func() {
			w := upload(mux, "cv.txt", bytes.Repeat([]byte("a"), 65))

			Convey("Then it should be too large", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
			})
		})

		Convey("When the resume field is missing", func() {
			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			_ = mw.WriteField("other", "x")
			_ = mw.Close()
			req := httptest.NewRequest(http.MethodPost, "/resume/extract", &buf)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestDirectoryEndpoints(t *testing.T) {
	Convey("Given a service without a colleges endpoint", t, func() {
		mux := newMux(service.New())

		Convey("When colleges are requested", func() {
			w := do(mux, http.MethodGet, "/colleges", "")

			Convey("Then a network error should be reported", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				So(decode[errorBody](w).Code, ShouldEqual, "network_error")
			})
		})

		Convey("When branches and skills are requested", func() {
			branches := decode[struct {
				Branches []string `json:"branches"`
			}](do(mux, http.MethodGet, "/branches", ""))
			skills := decode[struct {
				Skills []string `json:"skills"`
			}](do(mux, http.MethodGet, "/skills", ""))

			Convey("Then the taxonomy should be exposed", func() {
				So(branches.Branches, ShouldNotBeEmpty)
				So(skills.Skills, ShouldContain, "React")
			})
		})
	})

	Convey("Given a service with a colleges endpoint", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"allCollege":[{"name":"IIT Delhi"},{"name":" "},{"name":"NIT Trichy"}]}`))
		}))
		defer upstream.Close()

		svc := service.New(service.WithCollegeFetcher(colleges.New(upstream.URL)))
		w := do(newMux(svc), http.MethodGet, "/colleges", "")

		So(w.Code, ShouldEqual, http.StatusOK)
		So(decode[struct {
			Colleges []string `json:"colleges"`
		}](w).Colleges, ShouldResemble, []string{"IIT Delhi", "NIT Trichy"})
	})
}

func TestStatsAndHealth(t *testing.T) {
	Convey("Given a running API", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		mux := newMux(svc)
		seedMentors(mux)

		Convey("Then /stats should report counts", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			stats := decode[map[string]any](w)
			So(stats["store"], ShouldEqual, "memory")
			So(stats["mentors"], ShouldEqual, float64(3))
			So(stats["interns"], ShouldEqual, float64(0))
		})

		Convey("Then /healthz should expose metrics", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "http_requests_total")
		})
	})
}

func TestIntakeRateLimit(t *testing.T) {
	Convey("Given an intake limit of one request", t, func() {
		mux := newMux(service.New(), api.WithIntakeRate(0.001, 1))

		Convey("When two intakes arrive back to back", func() {
			first := do(mux, http.MethodPost, "/interns", intakeJSON)
			second := do(mux, http.MethodPost, "/interns", intakeJSON)

			Convey("Then the second should be rate limited", func() {
				So(first.Code, ShouldEqual, http.StatusCreated)
				So(second.Code, ShouldEqual, http.StatusTooManyRequests)
				So(decode[errorBody](second).Code, ShouldEqual, "rate_limited")
			})

			Convey("Then reads should not be limited", func() {
				So(do(mux, http.MethodGet, "/interns", "").Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestOpError(t *testing.T) {
	Convey("Given an operation error", t, func() {
		cause := context.DeadlineExceeded
		err := api.WrapKind("api.test", api.ErrBadRequest, cause)

		Convey("Then it should match both kind and cause", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldStartWith, "api.test: bad request")
		})

		Convey("Then Wrap should pass nil through", func() {
			So(api.Wrap("api.test", nil), ShouldBeNil)
		})
	})
}
