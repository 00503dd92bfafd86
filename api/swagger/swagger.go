package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Class Attendance API",
        "description": "Professors, students, subjects, enrollments and class check-ins.",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Login, registration and token lifecycle"},
        {"name": "Professors", "description": "Professor accounts"},
        {"name": "Students", "description": "Student profiles"},
        {"name": "Subjects", "description": "Courses and their check-in QR codes"},
        {"name": "Enrollments", "description": "Student to course links"},
        {"name": "Attendance", "description": "Check-ins, leave documents and exports"}
    ],
    "paths": {
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in as a professor or a student",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "Identity with bearer token", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/create-std": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a student account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}],
                "responses": {
                    "200": {"description": "Registered"},
                    "400": {"description": "Validation failure or duplicate", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/create-professor": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a professor account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterProfessorRequest"}}],
                "responses": {
                    "200": {"description": "Registered"},
                    "400": {"description": "Validation failure or duplicate", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the presented token",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Revoked"},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Claims of the presented token",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Token claims"},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/get-all-professors": {
            "get": {
                "tags": ["Professors"],
                "summary": "List professors",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Professors without passwords"}}
            }
        },
        "/get-professor/{id}": {
            "get": {
                "tags": ["Professors"],
                "summary": "Get professor by id",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/NumericID"}],
                "responses": {
                    "200": {"description": "Professor", "schema": {"$ref": "#/definitions/Professor"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/update-professor/{id}": {
            "put": {
                "tags": ["Professors"],
                "summary": "Replace a professor's details",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/NumericID"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfessorRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "400": {"description": "Validation failure or username taken", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/delete-professor/{id}": {
            "delete": {
                "tags": ["Professors"],
                "summary": "Delete a professor",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/NumericID"}],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Student profiles"}}
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get a student profile",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/NumericID"}],
                "responses": {
                    "200": {"description": "Profile", "schema": {"$ref": "#/definitions/StudentProfile"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update full name and/or major",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/NumericID"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "400": {"description": "Nothing to update", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a student and their enrollments",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/NumericID"}],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/students/{id}/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Courses a student is enrolled in",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/NumericID"}],
                "responses": {
                    "200": {"description": "Enrollments with course details"},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/get-all-subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "responses": {"200": {"description": "Subjects"}}
            }
        },
        "/get-subject/{id}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Get subject by course id",
                "parameters": [{"$ref": "#/parameters/CourseID"}],
                "responses": {
                    "200": {"description": "Subject", "schema": {"$ref": "#/definitions/Subject"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/create-subject": {
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Subject"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Course id already exists", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/update-subject/{id}": {
            "put": {
                "tags": ["Subjects"],
                "summary": "Update subject name and teacher",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/CourseID"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSubjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/delete-subject/{id}": {
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/CourseID"}],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/subjects/{id}/qr": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Check-in QR code for a course",
                "produces": ["image/png"],
                "parameters": [{"$ref": "#/parameters/CourseID"}],
                "responses": {
                    "200": {"description": "PNG encoding the check-in URL"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/enrollments": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll a student in a course",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}],
                "responses": {
                    "201": {"description": "Enrolled"},
                    "404": {"description": "Student or subject not found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Already enrolled", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/enrollments/{studentId}/{courseId}": {
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Remove an enrollment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "studentId", "type": "integer", "required": true},
                    {"in": "path", "name": "courseId", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Enrollment not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/check-class": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Record attendance",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "formData", "name": "status", "type": "string", "required": true, "description": "present, late, absent or leave"},
                    {"in": "formData", "name": "classId", "type": "string", "required": true},
                    {"in": "formData", "name": "stdId", "type": "string", "required": true},
                    {"in": "formData", "name": "leavDoc", "type": "file", "required": false}
                ],
                "responses": {
                    "200": {"description": "Recorded"},
                    "400": {"description": "Missing field or rejected upload", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List check-ins",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "classId", "type": "string"},
                    {"in": "query", "name": "stdId", "type": "string"}
                ],
                "responses": {"200": {"description": "Records, newest first", "schema": {"$ref": "#/definitions/AttendanceListResponse"}}}
            }
        },
        "/attendance/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Export a course's attendance sheet",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"in": "query", "name": "classId", "type": "string", "required": true},
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "400": {"description": "Missing classId or unknown format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/attendance/{id}/leave-doc": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download a leave document through a signed link",
                "parameters": [
                    {"$ref": "#/parameters/NumericID"},
                    {"in": "query", "name": "token", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Document bytes"},
                    "401": {"description": "Missing token", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "No such document", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "parameters": {
        "NumericID": {"in": "path", "name": "id", "type": "integer", "required": true},
        "CourseID": {"in": "path", "name": "id", "type": "string", "required": true}
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Identity": {
            "type": "object",
            "properties": {
                "role": {"type": "integer", "enum": [1, 2]},
                "id": {"type": "integer"},
                "student_id": {"type": "integer"},
                "std_class_id": {"type": "string"},
                "username": {"type": "string"},
                "fullname": {"type": "string"},
                "major": {"type": "string"},
                "signInDate": {"type": "string", "format": "date-time"},
                "token": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/Identity"}}
        },
        "RegisterStudentRequest": {
            "type": "object",
            "required": ["fullName", "studentId", "username", "password"],
            "properties": {
                "fullName": {"type": "string"},
                "studentId": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "RegisterProfessorRequest": {
            "type": "object",
            "required": ["fullName", "tel", "username", "password"],
            "properties": {
                "fullName": {"type": "string"},
                "tel": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "UpdateProfessorRequest": {
            "type": "object",
            "required": ["fullname", "tel", "username", "password"],
            "properties": {
                "fullname": {"type": "string"},
                "tel": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "Professor": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "fullname": {"type": "string"},
                "tel": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "StudentProfile": {
            "type": "object",
            "properties": {
                "student_id": {"type": "integer"},
                "fullname": {"type": "string"},
                "std_class_id": {"type": "string"},
                "username": {"type": "string"},
                "major": {"type": "string"}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "fullname": {"type": "string"},
                "major": {"type": "string"}
            }
        },
        "Subject": {
            "type": "object",
            "required": ["course_id", "course_name", "teacher_name"],
            "properties": {
                "course_id": {"type": "string"},
                "course_name": {"type": "string"},
                "teacher_name": {"type": "string"}
            }
        },
        "UpdateSubjectRequest": {
            "type": "object",
            "required": ["course_name", "teacher_name"],
            "properties": {
                "course_name": {"type": "string"},
                "teacher_name": {"type": "string"}
            }
        },
        "EnrollRequest": {
            "type": "object",
            "required": ["student_id", "course_id"],
            "properties": {
                "student_id": {"type": "integer"},
                "course_id": {"type": "string"}
            }
        },
        "AttendanceRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "course_id": {"type": "string"},
                "student_id": {"type": "string"},
                "checkin_time": {"type": "string", "format": "date-time"},
                "status": {"type": "string"},
                "has_leave_doc": {"type": "boolean"},
                "leave_doc_url": {"type": "string"},
                "leave_doc_expires_at": {"type": "string", "format": "date-time"}
            }
        },
        "AttendanceListResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/AttendanceRecord"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "err": {"type": "string"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
