package stubapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shulehub/shule/api"
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/rest"
)

const contextSchoolKey = "school"

// tenantMiddleware resolves the school from the tenant-scope header; every
// school-scoped endpoint requires it.
func (s *server) tenantMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		slug := ctx.Request().Header.Get(rest.TenantHeader)
		if slug == "" {
			return errMissingTenant
		}
		school := s.db.school(slug)
		if school == nil {
			return errUnknownTenant
		}
		ctx.Set(contextSchoolKey, school)
		return next(ctx)
	}
}

// requireModule denies staff accounts whose permission list lacks the module;
// administrator roles pass implicitly, mirroring the real backend.
func (s *server) requireModule(module string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			acc, err := s.contextAccount(ctx)
			if err != nil {
				return err
			}
			if !acc.HasAllAccess() && !acc.HasModule(module) {
				return errHTTPForbidden
			}
			return next(ctx)
		}
	}
}

func contextSchool(ctx echo.Context) *schoolData {
	school, _ := ctx.Get(contextSchoolKey).(*schoolData)
	return school
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	sg := g.Group("", jwt, s.tenantMiddleware)

	st := sg.Group("/students", s.requireModule("students"))
	st.GET("", s.studentList)
	st.POST("", s.studentCreate)
	st.GET("/:id", s.studentRetrieve)
	st.PUT("/:id", s.studentUpdate)
	st.DELETE("/:id", s.studentDestroy)

	ac := sg.Group("/academic", s.requireModule("academic"))
	ac.GET("/classes", s.classList)
	ac.POST("/classes", s.classCreate)
	ac.GET("/subjects", s.subjectList)
	ac.POST("/subjects", s.subjectCreate)

	inv := sg.Group("/inventory", s.requireModule("inventory"))
	inv.GET("/items", s.itemList)
	inv.POST("/items", s.itemCreate)
	inv.GET("/categories", s.categoryList)

	lv := sg.Group("/leaves", s.requireModule("leaves"))
	lv.GET("", s.leaveList)
	lv.POST("", s.leaveApply)
	lv.PATCH("/:id", s.leaveReview)

	dc := sg.Group("/discipline", s.requireModule("discipline"))
	dc.GET("", s.incidentList)
	dc.POST("", s.incidentReport)

	rb := sg.Group("/school/rbac/roles", s.requireModule("rbac"))
	rb.GET("", s.roleList)
	rb.POST("", s.roleCreate)
	rb.PUT("/:id", s.roleUpdate)
	rb.DELETE("/:id", s.roleDestroy)

	sg.POST("/uploads", s.upload)
}

// Students

func (s *server) studentList(ctx echo.Context) error {
	school := contextSchool(ctx)
	search := strings.ToLower(ctx.QueryParam("search"))
	classID := ctx.QueryParam("class_id")

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]api.Student, 0, len(school.students))
	for _, st := range school.students {
		if search != "" && !strings.Contains(strings.ToLower(st.Name), search) {
			continue
		}
		if classID != "" && st.ClassID != classID {
			continue
		}
		out = append(out, st)
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) studentCreate(ctx echo.Context) error {
	data := new(api.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	student := api.Student{
		ID:          newID(),
		AdmissionNo: data.AdmissionNo,
		Name:        data.Name,
		Email:       data.Email,
		ClassID:     data.ClassID,
		SectionID:   data.SectionID,
		GuardianID:  data.GuardianID,
		AdmittedAt:  time.Now().UTC(),
	}

	school := contextSchool(ctx)
	s.db.mu.Lock()
	school.students = append(school.students, student)
	s.db.mu.Unlock()
	return ctx.JSON(http.StatusCreated, student)
}

func (s *server) studentRetrieve(ctx echo.Context) error {
	school := contextSchool(ctx)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, st := range school.students {
		if st.ID == ctx.Param("id") {
			return ctx.JSON(http.StatusOK, st)
		}
	}
	return errHTTPNotFound
}

func (s *server) studentUpdate(ctx echo.Context) error {
	data := new(api.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	school := contextSchool(ctx)
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for i, st := range school.students {
		if st.ID == ctx.Param("id") {
			st.AdmissionNo = data.AdmissionNo
			st.Name = data.Name
			st.Email = data.Email
			st.ClassID = data.ClassID
			st.SectionID = data.SectionID
			st.GuardianID = data.GuardianID
			school.students[i] = st
			return ctx.JSON(http.StatusOK, st)
		}
	}
	return errHTTPNotFound
}

func (s *server) studentDestroy(ctx echo.Context) error {
	school := contextSchool(ctx)
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for i, st := range school.students {
		if st.ID == ctx.Param("id") {
			school.students = append(school.students[:i], school.students[i+1:]...)
			return ctx.NoContent(http.StatusNoContent)
		}
	}
	return errHTTPNotFound
}

// Academic

func (s *server) classList(ctx echo.Context) error {
	school := contextSchool(ctx)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return ctx.JSON(http.StatusOK, school.classes)
}

func (s *server) classCreate(ctx echo.Context) error {
	data := new(api.NewClass)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	class := api.Class{ID: newID(), Name: data.Name}
	school := contextSchool(ctx)
	s.db.mu.Lock()
	school.classes = append(school.classes, class)
	s.db.mu.Unlock()
	return ctx.JSON(http.StatusCreated, class)
}

func (s *server) subjectList(ctx echo.Context) error {
	school := contextSchool(ctx)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return ctx.JSON(http.StatusOK, school.subjects)
}

func (s *server) subjectCreate(ctx echo.Context) error {
	data := new(api.NewSubject)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	subject := api.Subject{ID: newID(), Name: data.Name, Code: data.Code, ClassID: data.ClassID}
	school := contextSchool(ctx)
	s.db.mu.Lock()
	school.subjects = append(school.subjects, subject)
	s.db.mu.Unlock()
	return ctx.JSON(http.StatusCreated, subject)
}

// Inventory

func (s *server) itemList(ctx echo.Context) error {
	school := contextSchool(ctx)
	categoryID := ctx.QueryParam("category_id")

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]api.InventoryItem, 0, len(school.items))
	for _, item := range school.items {
		if categoryID != "" && item.CategoryID != categoryID {
			continue
		}
		out = append(out, item)
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) itemCreate(ctx echo.Context) error {
	data := new(api.NewInventoryItem)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	item := api.InventoryItem{
		ID:         newID(),
		Name:       data.Name,
		CategoryID: data.CategoryID,
		Quantity:   data.Quantity,
		UnitPrice:  data.UnitPrice,
	}
	school := contextSchool(ctx)
	s.db.mu.Lock()
	school.items = append(school.items, item)
	s.db.mu.Unlock()
	return ctx.JSON(http.StatusCreated, item)
}

func (s *server) categoryList(ctx echo.Context) error {
	school := contextSchool(ctx)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return ctx.JSON(http.StatusOK, school.categories)
}

// Leaves

func (s *server) leaveList(ctx echo.Context) error {
	school := contextSchool(ctx)
	status := ctx.QueryParam("status")

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]api.Leave, 0, len(school.leaves))
	for _, lv := range school.leaves {
		if status != "" && lv.Status != status {
			continue
		}
		out = append(out, lv)
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *server) leaveApply(ctx echo.Context) error {
	data := new(api.NewLeave)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	acc, err := s.contextAccount(ctx)
	if err != nil {
		return err
	}

	leave := api.Leave{
		ID:      newID(),
		StaffID: acc.ID,
		From:    data.From,
		To:      data.To,
		Reason:  data.Reason,
		Status:  api.LeavePending,
	}
	school := contextSchool(ctx)
	s.db.mu.Lock()
	school.leaves = append(school.leaves, leave)
	s.db.mu.Unlock()
	return ctx.JSON(http.StatusCreated, leave)
}

func (s *server) leaveReview(ctx echo.Context) error {
	data := new(api.LeaveReview)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	school := contextSchool(ctx)
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for i, lv := range school.leaves {
		if lv.ID == ctx.Param("id") {
			lv.Status = data.Status
			school.leaves[i] = lv
			return ctx.JSON(http.StatusOK, lv)
		}
	}
	return errHTTPNotFound
}

// Discipline

func (s *server) incidentList(ctx echo.Context) error {
	school := contextSchool(ctx)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return ctx.JSON(http.StatusOK, school.incidents)
}

func (s *server) incidentReport(ctx echo.Context) error {
	data := new(api.NewIncident)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	incident := api.Incident{
		ID:         newID(),
		StudentID:  data.StudentID,
		Title:      data.Title,
		Details:    data.Details,
		OccurredAt: data.OccurredAt,
	}
	school := contextSchool(ctx)
	s.db.mu.Lock()
	school.incidents = append(school.incidents, incident)
	s.db.mu.Unlock()
	return ctx.JSON(http.StatusCreated, incident)
}

// RBAC roles

func (s *server) roleList(ctx echo.Context) error {
	school := contextSchool(ctx)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return ctx.JSON(http.StatusOK, school.roles)
}

func (s *server) roleCreate(ctx echo.Context) error {
	data := new(api.NewRole)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	role := api.Role{ID: newID(), Name: data.Name, Permissions: data.Permissions}
	school := contextSchool(ctx)
	s.db.mu.Lock()
	school.roles = append(school.roles, role)
	s.db.mu.Unlock()
	return ctx.JSON(http.StatusCreated, role)
}

func (s *server) roleUpdate(ctx echo.Context) error {
	data := new(api.NewRole)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	school := contextSchool(ctx)
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for i, role := range school.roles {
		if role.ID == ctx.Param("id") {
			role.Name = data.Name
			role.Permissions = data.Permissions
			school.roles[i] = role
			return ctx.JSON(http.StatusOK, role)
		}
	}
	return errHTTPNotFound
}

func (s *server) roleDestroy(ctx echo.Context) error {
	school := contextSchool(ctx)
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for i, role := range school.roles {
		if role.ID == ctx.Param("id") {
			school.roles = append(school.roles[:i], school.roles[i+1:]...)
			return ctx.NoContent(http.StatusNoContent)
		}
	}
	return errHTTPNotFound
}

// Uploads

func (s *server) upload(ctx echo.Context) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file part")
	}

	// the stub keeps nothing; it only hands back a plausible descriptor
	id := newID()
	return ctx.JSON(http.StatusCreated, api.UploadResult{
		ID:  id,
		URL: "/uploads/" + id + "/" + file.Filename,
	})
}
