package schema

// Schema names match the collection each kind is stored in.
const (
	Users          = "users"
	Universities   = "universities"
	Programs       = "programs"
	Applications   = "applications"
	ScrapeRequests = "scrape_requests"
)

func UserSchema() Schema {
	return Schema{
		Name:     Users,
		Required: []string{"email", "name"},
		Properties: map[string]Field{
			"email": str(),
			"name":  str(),
			"profile": object(map[string]Field{
				"phoneNumber": str(),
				"dateOfBirth": date(),
				"gender":      str(),
				"nationality": str(),
				"currentEducation": object(map[string]Field{
					"level":       str(),
					"institution": str(),
					"major":       str(),
					"gpa":         num(),
				}),
			}),
			"preferences": object(map[string]Field{
				"preferredLocations": list(str()),
				"preferredPrograms":  list(str()),
				"maxFee":             num(),
				"studyLevel":         str(),
			}),
			"documents": list(object(map[string]Field{
				"type":       str(),
				"url":        str(),
				"uploadedAt": date(),
			})),
			"role":             enum("user", "admin"),
			"emailVerified":    boolean(),
			"educationLevel":   str(),
			"academicInterest": str(),
			"province":         str(),
			"grades":           str(),
			"createdAt":        date(),
			"updatedAt":        date(),
			"lastLogin":        date(),
		},
	}
}

func UniversitySchema() Schema {
	return Schema{
		Name:     Universities,
		Required: []string{"name", "location", "type"},
		Properties: map[string]Field{
			"name":            str(),
			"description":     str(),
			"type":            enum("public", "private"),
			"ranking":         num(),
			"establishedYear": num(),
			"location": object(map[string]Field{
				"city":     str(),
				"province": str(),
				"address":  str(),
				"coordinates": object(map[string]Field{
					"latitude":  num(),
					"longitude": num(),
				}),
			}),
			"website":   str(),
			"url":       str(),
			"applyLink": str(),
			"contactInfo": object(map[string]Field{
				"email": str(),
				"phone": str(),
				"socialMedia": object(map[string]Field{
					"facebook": str(),
					"twitter":  str(),
					"linkedin": str(),
				}),
			}),
			"facilities":    list(str()),
			"accreditation": list(str()),
			"isActive":      boolean(),
			"admissionOpen": boolean(),
			// free text as scraped, e.g. "15 March 2025"
			"applicationDeadline": str(),
			"lastUpdated":         date(),
			"createdAt":           date(),
			"updatedAt":           date(),
		},
	}
}

func ProgramSchema() Schema {
	return Schema{
		Name:     Programs,
		Required: []string{"name", "universityId", "degreeLevel", "duration"},
		Properties: map[string]Field{
			"name":         str(),
			"universityId": str(),
			"degreeLevel":  enum("Bachelors", "Masters", "PhD"),
			"fieldOfStudy": str(),
			"description":  str(),
			"duration": object(map[string]Field{
				"years":     num(),
				"semesters": num(),
			}),
			"admissionRequirements": object(map[string]Field{
				"minimumGPA":             num(),
				"requiredTests":          list(str()),
				"documents":              list(str()),
				"additionalRequirements": str(),
			}),
			"fees": object(map[string]Field{
				"tuitionFee":     num(),
				"applicationFee": num(),
				"otherFees": list(object(map[string]Field{
					"name":   str(),
					"amount": num(),
				})),
				"currency":    str(),
				"perSemester": boolean(),
			}),
			"deadlines": object(map[string]Field{
				"applicationStart": date(),
				"applicationEnd":   date(),
				"programStart":     date(),
			}),
			"quota":       num(),
			"isActive":    boolean(),
			"lastUpdated": date(),
			"createdAt":   date(),
			"updatedAt":   date(),
		},
	}
}

func ApplicationSchema() Schema {
	return Schema{
		Name:     Applications,
		Required: []string{"userId", "programId", "universityId", "status"},
		Properties: map[string]Field{
			"userId":       str(),
			"programId":    str(),
			"universityId": str(),
			"status":       enum("pending", "submitted", "under-review", "accepted", "rejected"),
			"documents": list(object(map[string]Field{
				"type":       str(),
				"name":       str(),
				"url":        str(),
				"uploadedAt": date(),
				"status":     enum("pending", "approved", "rejected"),
			})),
			"applicationData": object(map[string]Field{
				"personalInfo": object(map[string]Field{
					"fullName":       str(),
					"dateOfBirth":    date(),
					"nationality":    str(),
					"passportNumber": str(),
				}),
				"academicInfo": object(map[string]Field{
					"previousDegree": str(),
					"institution":    str(),
					"gpa":            num(),
					"graduationYear": num(),
				}),
				"testScores": list(object(map[string]Field{
					"testName":     str(),
					"score":        num(),
					"dateObtained": date(),
				})),
			}),
			"timeline": list(object(map[string]Field{
				"status": enum("pending", "submitted", "under-review", "accepted", "rejected"),
				"date":   date(),
				"notes":  str(),
			})),
			"notes":       str(),
			"submittedAt": date(),
			"createdAt":   date(),
			"updatedAt":   date(),
		},
	}
}

func ScrapeRequestSchema() Schema {
	return Schema{
		Name:     ScrapeRequests,
		Required: []string{"userId", "universityUrl", "status"},
		Properties: map[string]Field{
			"userId":        str(),
			"universityUrl": str(),
			"status":        enum("pending", "processing", "completed", "failed"),
			"createdAt":     date(),
			"updatedAt":     date(),
		},
	}
}
