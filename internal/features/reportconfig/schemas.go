package reportconfig

import "go-crossroads/internal/common/models"

// Flat parameter names below are part of the viewer URL contract and must
// not be renamed: bookmarked report links depend on them.

func init() {
	register(caseSchema())
	register(categorySchema())
	register(eventSchema())
	register(referralSchema())
	register(outcomeGoalsSchema())
	register(assistanceSchema())
}

func caseSchema() *Schema {
	return &Schema{
		Type:                  ReportTypeCase,
		Title:                 "Case Report",
		Encoding:              EncodingFlat,
		ViewerPath:            "/reports/case",
		UpstreamPath:          "/reports/cases/enhanced",
		IncludeSummary:        "includeCaseSummary",
		IncludeRecords:        "includeCaseRecords",
		DefaultOrderBy:        "createdAt",
		DefaultOrderDirection: OrderDesc,
		SortFields:            []string{"createdAt", "fullName", "caseNumber"},
		Filters: []FilterSpec{
			rangeOf(FilterDateRange, "dateRange", "Created between", "Dates", "startDate", "endDate"),
			rangeOf(FilterAgeRange, "ageRange", "Age", "Demographics", "minAge", "maxAge"),
			scalar("gender", "Gender", "Demographics", ""),
			scalar("ethnicity", "Ethnicity", "Demographics", ""),
			scalar("countryId", "Country of birth", "Demographics", models.ReferenceCountries),
			scalar("city", "City", "Location", ""),
			scalar("zipCode", "Zip code", "Location", ""),
			scalar("agentId", "Assigned agent", "Assignment", models.ReferenceAgents),
			scalar("unitId", "Unit", "Assignment", models.ReferenceUnits),
		},
		Fields: []FieldSpec{
			section("includeCaseSummary", "Include summary"),
			section("includeCaseRecords", "Include case records"),
			always(summary("summaryTotalCases", "Total cases", "totalCases", "total")),
			summary("summaryGenderBreakdown", "Gender breakdown", "demographics.gender", "genderBreakdown"),
			summary("summaryAgeBreakdown", "Age breakdown", "demographics.ageGroups", "ageBreakdown"),
			summary("summaryEthnicityBreakdown", "Ethnicity breakdown", "demographics.ethnicity", "ethnicityBreakdown"),
			summary("summaryCityBreakdown", "Cases by city", "locations.cities", "cityBreakdown"),
			summary("summaryAgentBreakdown", "Cases by agent", "agents.breakdown", "agentBreakdown"),
			always(record("caseFullName", "Full name", "fullName", "name")),
			always(record("caseEmail", "Email", "email")),
			always(record("caseNumber", "Case number", "caseNumber", "caseId", "_id")),
			record("casePhone", "Phone", "phone", "phoneNumber"),
			record("caseDateOfBirth", "Date of birth", "dateOfBirth", "dob"),
			record("caseGender", "Gender", "gender"),
			record("caseEthnicity", "Ethnicity", "ethnicity"),
			record("caseAddress", "Address", "address.street", "streetAddress"),
			record("caseCity", "City", "address.city", "city"),
			record("caseAssignedAgent", "Assigned agent", "assignedTo.name", "agentName"),
			record("caseCreatedAt", "Created", "createdAt"),
			off(record("caseOtherInfo", "Other information", "otherInfo", "notes")),
		},
	}
}

func categorySchema() *Schema {
	return &Schema{
		Type:                  ReportTypeCategory,
		Title:                 "Category Report",
		Encoding:              EncodingFlat,
		ViewerPath:            "/reports/category",
		UpstreamPath:          "/reports/categories/enhanced",
		IncludeSummary:        "includeCategorySummary",
		IncludeRecords:        "includeCategoryRecords",
		DefaultOrderBy:        "createdAt",
		DefaultOrderDirection: OrderDesc,
		SortFields:            []string{"createdAt", "amount", "categoryName"},
		Filters: []FilterSpec{
			rangeOf(FilterDateRange, "dateRange", "Requested between", "Dates", "startDate", "endDate"),
			scalar("sectionId", "Category section", "Categories", models.ReferenceCategorySections),
			scalar("categoryId", "Category", "Categories", models.ReferenceCategories),
			rangeOf(FilterAmountRange, "amountRange", "Amount", "Amounts", "minAmount", "maxAmount"),
			scalar("agentId", "Agent", "Assignment", models.ReferenceAgents),
			scalar("unitId", "Unit", "Assignment", models.ReferenceUnits),
		},
		Fields: []FieldSpec{
			section("includeCategorySummary", "Include summary"),
			section("includeCategoryRecords", "Include assistance records"),
			always(summary("summaryTotalAssistance", "Total assistance", "totals.assistance", "totalAssistance")),
			summary("summaryTotalAmount", "Total amount", "amounts.total", "totalAmount"),
			summary("summaryByCategory", "By category", "breakdown.byCategory", "byCategory"),
			summary("summaryBySection", "By section", "breakdown.bySection", "bySection"),
			summary("summaryUniqueCases", "Unique cases", "cases.unique", "uniqueCases"),
			always(record("categoryName", "Category", "category.name", "categoryName")),
			record("categorySection", "Section", "category.section.name", "sectionName"),
			record("assistanceCaseName", "Case", "case.fullName", "caseName"),
			record("assistanceAmount", "Amount", "amount"),
			record("assistanceUnit", "Unit", "unit.name", "unitName"),
			record("assistanceDate", "Date", "requestDate", "createdAt"),
			record("assistanceAgent", "Agent", "agent.name", "agentName"),
			off(record("assistanceDescription", "Description", "description")),
		},
	}
}

func eventSchema() *Schema {
	return &Schema{
		Type:                  ReportTypeEvent,
		Title:                 "Event Report",
		Encoding:              EncodingBlob,
		ViewerPath:            "/reports/event",
		UpstreamPath:          "/reports/events/enhanced",
		IncludeSummary:        "includeEventSummary",
		IncludeRecords:        "includeEventRecords",
		DefaultOrderBy:        "eventDate",
		DefaultOrderDirection: OrderDesc,
		SortFields:            []string{"eventDate", "name", "attendance"},
		Filters: []FilterSpec{
			rangeOf(FilterDateRange, "dateRange", "Held between", "Dates", "startDate", "endDate"),
			scalar("eventTypeId", "Event type", "Event", models.ReferenceEventTypes),
			scalar("locationId", "Location", "Event", models.ReferenceEventLocations),
			scalar("activityId", "Activity", "Event", models.ReferenceEventActivities),
			scalar("facilitatorId", "Facilitator", "Assignment", models.ReferenceAgents),
		},
		Fields: []FieldSpec{
			section("includeEventSummary", "Include summary"),
			section("includeEventRecords", "Include event records"),
			always(summary("summaryTotalEvents", "Total events", "totals.events", "totalEvents")),
			summary("summaryTotalAttendance", "Total attendance", "attendanceStatistics.totalAttendance", "totalAttendance"),
			summary("summaryAverageAttendance", "Average attendance", "attendanceStatistics.averageAttendance", "averageAttendance"),
			summary("summaryEventsByType", "Events by type", "breakdown.byType", "eventsByType"),
			summary("summaryEventsByLocation", "Events by location", "breakdown.byLocation", "eventsByLocation"),
			always(record("eventName", "Event", "name", "title")),
			always(record("eventDate", "Date", "date", "startDate")),
			record("eventType", "Type", "eventType.name", "type"),
			record("eventLocation", "Location", "location.name", "locationName"),
			record("eventAttendance", "Attendance", "attendance.total", "attendanceCount"),
			record("eventActivities", "Activities", "activities"),
			record("eventFacilitator", "Facilitator", "facilitator.name", "facilitatorName"),
			off(record("eventDescription", "Description", "description")),
		},
	}
}

func referralSchema() *Schema {
	return &Schema{
		Type:                  ReportTypeReferral,
		Title:                 "Referral Report",
		Encoding:              EncodingFlat,
		ViewerPath:            "/reports/referral",
		UpstreamPath:          "/reports/referrals/enhanced",
		IncludeSummary:        "includeReferralSummary",
		IncludeRecords:        "includeReferralRecords",
		DefaultOrderBy:        "createdAt",
		DefaultOrderDirection: OrderDesc,
		SortFields:            []string{"createdAt", "deadline", "amount"},
		Filters: []FilterSpec{
			rangeOf(FilterDateRange, "dateRange", "Referred between", "Dates", "startDate", "endDate"),
			rangeOf(FilterDateRange, "deadlineRange", "Deadline between", "Dates", "deadlineStartDate", "deadlineEndDate"),
			rangeOf(FilterAmountRange, "amountRange", "Amount", "Amounts", "minAmount", "maxAmount"),
			scalar("statusId", "Status", "Status", models.ReferenceRequestStatuses),
			scalar("serviceId", "Service", "Status", models.ReferenceServices),
			scalar("agentId", "Agent", "Assignment", models.ReferenceAgents),
			scalar("unitId", "Unit", "Assignment", models.ReferenceUnits),
		},
		Fields: []FieldSpec{
			section("includeReferralSummary", "Include summary"),
			section("includeReferralRecords", "Include referral records"),
			always(summary("summaryTotalReferrals", "Total referrals", "totals.referrals", "totalReferrals")),
			summary("summaryTotalAmount", "Total amount", "amounts.total", "totalAmount"),
			summary("summaryByStatus", "By status", "breakdown.byStatus", "byStatus"),
			summary("summaryByService", "By service", "breakdown.byService", "byService"),
			summary("summaryOverdue", "Overdue", "deadlines.overdue", "overdueCount"),
			always(record("referralCaseName", "Case", "case.fullName", "caseName")),
			always(record("referralService", "Service", "service.name", "serviceName")),
			record("referralStatus", "Status", "status.name", "statusName"),
			record("referralAmount", "Amount", "amount"),
			record("referralDeadline", "Deadline", "deadline"),
			record("referralAgent", "Agent", "agent.name", "agentName"),
			record("referralCreatedAt", "Created", "createdAt"),
			off(record("referralNotes", "Notes", "notes")),
		},
	}
}

func outcomeGoalsSchema() *Schema {
	return &Schema{
		Type:                  ReportTypeOutcomeGoals,
		Title:                 "Outcome Goals Report",
		Encoding:              EncodingBlob,
		ViewerPath:            "/reports/outcome-goals",
		UpstreamPath:          "/reports/outcome-goals/enhanced",
		IncludeSummary:        "includeGoalSummary",
		IncludeRecords:        "includeGoalRecords",
		DefaultOrderBy:        "createdAt",
		DefaultOrderDirection: OrderDesc,
		SortFields:            []string{"createdAt", "targetDate", "goalName"},
		Filters: []FilterSpec{
			rangeOf(FilterDateRange, "dateRange", "Created between", "Dates", "startDate", "endDate"),
			scalar("sectionId", "Outcome section", "Goals", models.ReferenceOutcomeSections),
			scalar("goalId", "Goal", "Goals", models.ReferenceOutcomeGoals),
			scalar("statusId", "Status", "Goals", models.ReferenceOutcomeStatuses),
			scalar("agentId", "Agent", "Assignment", models.ReferenceAgents),
		},
		Fields: []FieldSpec{
			section("includeGoalSummary", "Include summary"),
			section("includeGoalRecords", "Include goal records"),
			always(summary("summaryTotalGoals", "Total goals", "totals.goals", "totalGoals")),
			summary("summaryCompletedGoals", "Completed goals", "completion.completed", "completedGoals"),
			summary("summaryCompletionRate", "Completion rate", "completion.rate", "completionRate"),
			summary("summaryBySection", "By section", "breakdown.bySection", "bySection"),
			summary("summaryByStatus", "By status", "breakdown.byStatus", "byStatus"),
			always(record("goalName", "Goal", "goal.name", "goalName")),
			always(record("goalCaseName", "Case", "case.fullName", "caseName")),
			record("goalSection", "Section", "goal.section.name", "sectionName"),
			record("goalStatus", "Status", "status.name", "statusName"),
			record("goalTargetDate", "Target date", "targetDate"),
			record("goalAgent", "Agent", "agent.name", "agentName"),
			off(record("goalCompletionDate", "Completion date", "completedAt", "completionDate")),
		},
	}
}

func assistanceSchema() *Schema {
	return &Schema{
		Type:                  ReportTypeAssistance,
		Title:                 "Assistance Report",
		Encoding:              EncodingFlat,
		ViewerPath:            "/reports/assistance",
		UpstreamPath:          "/reports/assistance/enhanced",
		IncludeSummary:        "includeAssistanceSummary",
		IncludeRecords:        "includeAssistanceRecords",
		DefaultOrderBy:        "createdAt",
		DefaultOrderDirection: OrderDesc,
		SortFields:            []string{"createdAt", "amount"},
		Filters: []FilterSpec{
			rangeOf(FilterDateRange, "dateRange", "Requested between", "Dates", "startDate", "endDate"),
			rangeOf(FilterAmountRange, "amountRange", "Amount", "Amounts", "minAmount", "maxAmount"),
			scalar("categoryId", "Category", "Categories", models.ReferenceCategories),
			scalar("statusId", "Status", "Categories", models.ReferenceRequestStatuses),
			scalar("unitId", "Unit", "Assignment", models.ReferenceUnits),
			scalar("agentId", "Agent", "Assignment", models.ReferenceAgents),
		},
		Fields: []FieldSpec{
			section("includeAssistanceSummary", "Include summary"),
			section("includeAssistanceRecords", "Include assistance records"),
			summary("summaryTotalRequests", "Total requests", "totals.requests", "totalRequests"),
			always(summary("summaryTotalAmount", "Total amount", "amounts.total", "totalAmount")),
			summary("summaryAverageAmount", "Average amount", "amounts.average", "averageAmount"),
			summary("summaryByCategory", "By category", "breakdown.byCategory", "byCategory"),
			summary("summaryByUnit", "By unit", "breakdown.byUnit", "byUnit"),
			always(record("assistanceCaseName", "Case", "case.fullName", "caseName")),
			always(record("assistanceAmount", "Amount", "amount")),
			record("assistanceCategory", "Category", "category.name", "categoryName"),
			record("assistanceUnit", "Unit", "unit.name", "unitName"),
			record("assistanceStatus", "Status", "status.name", "statusName"),
			record("assistanceDate", "Date", "requestDate", "createdAt"),
			record("assistanceAgent", "Agent", "agent.name", "agentName"),
			off(record("assistanceNotes", "Notes", "notes")),
		},
	}
}
