package selectors

// tables is loaded once at init and never mutated; Lookup hands out copies.
var tables = map[PlatformID]Set{
	Workday:    workdaySet,
	Greenhouse: greenhouseSet,
	Lever:      leverSet,
	LinkedIn:   linkedInSet,
	Ashby:      ashbySet,
	Generic:    genericSet,
}

var workdaySet = Set{
	Platform: Workday,
	Form: Selector{
		"[data-automation-id='applyFlowPage']",
		"[data-automation-id='jobApplication']",
		"form",
	},
	QuestionBlock: Selector{
		"[data-automation-id^='formField-']",
		"[data-automation-id='questionItem']",
		"fieldset",
	},
	Label: Selector{
		"[data-automation-id='richText'] p",
		"label",
		"legend",
	},
	ControlLabel: Selector{
		"label",
	},
	Required: Selector{
		"abbr[title='required']",
		"[aria-required='true']",
		"[required]",
	},
	Inputs: Inputs{
		Text:     Selector{"input[data-automation-id='textInput']", "input[type='text']", "input[type='email']", "input[type='tel']"},
		Textarea: Selector{"textarea[data-automation-id='textAreaField']", "textarea"},
		Select:   Selector{"select", "button[aria-haspopup='listbox']"},
		Checkbox: Selector{"input[data-automation-id='checkbox']", "input[type='checkbox']"},
		Radio:    Selector{"input[data-automation-id='radioBtn']", "input[type='radio']"},
		File:     Selector{"input[data-automation-id='file-upload-input-ref']", "input[type='file']"},
		Option:   Selector{"option", "[data-automation-id='promptOption']", "[role='option']"},
	},
	Fields: map[FieldName]Selector{
		FieldFirstName: {"input[data-automation-id='legalNameSection_firstName']"},
		FieldLastName:  {"input[data-automation-id='legalNameSection_lastName']"},
		FieldEmail:     {"input[data-automation-id='email']"},
		FieldPhone:     {"input[data-automation-id='phone-number']"},
		FieldAddress:   {"input[data-automation-id='addressSection_addressLine1']"},
		FieldCity:      {"input[data-automation-id='addressSection_city']"},
		FieldState:     {"[data-automation-id='addressSection_countryRegion']"},
		FieldCountry:   {"[data-automation-id='countryDropdown']"},
		FieldZip:       {"input[data-automation-id='addressSection_postalCode']"},
		FieldLinkedIn:  {"input[data-automation-id='linkedinQuestion']"},
		FieldWebsite:   {"input[data-automation-id='website']"},
		FieldResume:    {"input[data-automation-id='file-upload-input-ref']"},
	},
	Navigation: Navigation{
		Next:     Selector{"button[data-automation-id='bottom-navigation-next-button']", "button[data-automation-id='pageFooterNextButton']"},
		Previous: Selector{"button[data-automation-id='bottom-navigation-previous-button']"},
		Submit:   Selector{"button[data-automation-id='bottom-navigation-submit-button']", "button[data-automation-id='pageFooterSubmitButton']"},
	},
	Progress: Progress{
		Container:   Selector{"[data-automation-id='progressBar']"},
		CurrentStep: Selector{"[data-automation-id='progressBarActiveStep']"},
		Steps:       Selector{"[data-automation-id='progressBar'] li"},
	},
	EEOSection: Selector{
		"[data-automation-id='voluntaryDisclosuresPage']",
		"[data-automation-id='selfIdentificationPage']",
	},
	Errors: Selector{
		"[data-automation-id='errorMessage']",
		"[data-automation-id='inputAlert']",
	},
}

var greenhouseSet = Set{
	Platform: Greenhouse,
	Form: Selector{
		"#application_form",
		"#application-form",
		"form#application",
	},
	QuestionBlock: Selector{
		".field",
		".application-question",
		"fieldset",
	},
	Label: Selector{
		"label",
		".application-label",
		"legend",
	},
	ControlLabel: Selector{
		"label",
	},
	Required: Selector{
		".asterisk",
		"[aria-required='true']",
		"[required]",
	},
	Inputs: Inputs{
		Text:     Selector{"input[type='text']", "input[type='email']", "input[type='tel']", "input[type='url']"},
		Textarea: Selector{"textarea"},
		Select:   Selector{"select"},
		Checkbox: Selector{"input[type='checkbox']"},
		Radio:    Selector{"input[type='radio']"},
		File:     Selector{"input[type='file']"},
		Option:   Selector{"option"},
	},
	Fields: map[FieldName]Selector{
		FieldFirstName:   {"#first_name"},
		FieldLastName:    {"#last_name"},
		FieldEmail:       {"#email"},
		FieldPhone:       {"#phone"},
		FieldCity:        {"#job_application_location", "#candidate-location"},
		FieldLinkedIn:    {"input[autocomplete='custom-question-linkedin-profile']", "input[name*='linkedin']"},
		FieldWebsite:     {"input[autocomplete='custom-question-website']", "input[name*='website']"},
		FieldResume:      {"#resume", "input[type='file'][name*='resume']"},
		FieldCoverLetter: {"#cover_letter", "input[type='file'][name*='cover_letter']"},
	},
	Navigation: Navigation{
		Next:   Selector{"#submit_app", "button[type='submit']"},
		Submit: Selector{"#submit_app", "button[type='submit']", "input[type='submit']"},
	},
	Progress: Progress{
		Container: Selector{"#application_form", "#application-form"},
	},
	EEOSection: Selector{
		"#eeoc_fields",
		".eeoc-fields",
		"#demographic_questions",
	},
	Errors: Selector{
		".field-error-msg",
		".error",
		"[aria-invalid='true']",
	},
}

var leverSet = Set{
	Platform: Lever,
	Form: Selector{
		"#application-form",
		".application-form",
		"form",
	},
	QuestionBlock: Selector{
		".application-question",
		".custom-question",
		"li.application-field",
	},
	Label: Selector{
		".application-label",
		".text",
		"label",
	},
	ControlLabel: Selector{
		"label",
	},
	Required: Selector{
		".required",
		"[required]",
	},
	Inputs: Inputs{
		Text:     Selector{"input[type='text']", "input[type='email']", "input[type='tel']", "input[type='url']"},
		Textarea: Selector{"textarea"},
		Select:   Selector{"select"},
		Checkbox: Selector{"input[type='checkbox']"},
		Radio:    Selector{"input[type='radio']"},
		File:     Selector{"input[type='file']"},
		Option:   Selector{"option"},
	},
	Fields: map[FieldName]Selector{
		FieldFullName:  {"input[name='name']"},
		FieldEmail:     {"input[name='email']"},
		FieldPhone:     {"input[name='phone']"},
		FieldLinkedIn:  {"input[name='urls[LinkedIn]']"},
		FieldGitHub:    {"input[name='urls[GitHub]']"},
		FieldPortfolio: {"input[name='urls[Portfolio]']"},
		FieldWebsite:   {"input[name='urls[Other]']"},
		FieldResume:    {"input[name='resume']", "#resume-upload-input"},
	},
	Navigation: Navigation{
		Next:   Selector{"button[type='submit']", "#btn-submit"},
		Submit: Selector{"#btn-submit", "button[type='submit']"},
	},
	Progress: Progress{
		Container: Selector{".application-page", "#application-form"},
	},
	EEOSection: Selector{
		".eeo-section",
		"[data-qa='eeo-section']",
	},
	Errors: Selector{
		".error-message",
		".application-error",
	},
}

var linkedInSet = Set{
	Platform: LinkedIn,
	Form: Selector{
		".jobs-easy-apply-modal",
		".jobs-easy-apply-content",
		"form",
	},
	QuestionBlock: Selector{
		".jobs-easy-apply-form-section__grouping",
		".fb-dash-form-element",
		"fieldset",
	},
	Label: Selector{
		"label",
		"legend span[aria-hidden='true']",
		"legend",
	},
	ControlLabel: Selector{
		"label",
	},
	Required: Selector{
		".fb-dash-form-element__label-title--is-required",
		"[aria-required='true']",
		"[required]",
	},
	Inputs: Inputs{
		Text:     Selector{"input.artdeco-text-input--input", "input[type='text']"},
		Textarea: Selector{"textarea"},
		Select:   Selector{"select"},
		Checkbox: Selector{"input[type='checkbox']"},
		Radio:    Selector{"input[type='radio']"},
		File:     Selector{"input[type='file']"},
		Option:   Selector{"option"},
	},
	Fields: map[FieldName]Selector{
		FieldFirstName: {"input[id*='firstName']"},
		FieldLastName:  {"input[id*='lastName']"},
		FieldEmail:     {"select[id*='emailAddress']", "input[id*='email']"},
		FieldPhone:     {"input[id*='phoneNumber']"},
		FieldCity:      {"input[id*='city']"},
		FieldResume:    {"input[id*='jobs-document-upload']", "input[type='file']"},
	},
	Navigation: Navigation{
		Next:     Selector{"button[aria-label='Continue to next step']", "button[aria-label='Review your application']"},
		Previous: Selector{"button[aria-label='Back to previous step']"},
		Submit:   Selector{"button[aria-label='Submit application']"},
	},
	Progress: Progress{
		Container:   Selector{"progress", "[role='progressbar']"},
		CurrentStep: Selector{"progress"},
	},
	EEOSection: Selector{
		"[data-test-form-section='voluntary-self-identification']",
		".jobs-easy-apply-form-section__grouping--eeo",
	},
	Errors: Selector{
		".artdeco-inline-feedback--error",
		"[role='alert']",
	},
}

var ashbySet = Set{
	Platform: Ashby,
	Form: Selector{
		".ashby-application-form-container",
		"form",
	},
	QuestionBlock: Selector{
		".ashby-application-form-field-entry",
		"fieldset",
	},
	Label: Selector{
		".ashby-application-form-question-title",
		"label",
	},
	ControlLabel: Selector{
		"label",
	},
	Required: Selector{
		".ashby-application-form-question-title--required",
		"[required]",
	},
	Inputs: Inputs{
		Text:     Selector{"input[type='text']", "input[type='email']", "input[type='tel']"},
		Textarea: Selector{"textarea"},
		Select:   Selector{"select", "[role='combobox']"},
		Checkbox: Selector{"input[type='checkbox']"},
		Radio:    Selector{"input[type='radio']"},
		File:     Selector{"input[type='file']"},
		Option:   Selector{"option", "[role='option']"},
	},
	Fields: map[FieldName]Selector{
		FieldFullName: {"input[name='_systemfield_name']"},
		FieldEmail:    {"input[name='_systemfield_email']"},
		FieldPhone:    {"input[name='_systemfield_phone']"},
		FieldLinkedIn: {"input[name*='linkedin']"},
		FieldResume:   {"input[name='_systemfield_resume']", "input[type='file']"},
	},
	Navigation: Navigation{
		Next:   Selector{".ashby-application-form-submit-button", "button[type='submit']"},
		Submit: Selector{".ashby-application-form-submit-button", "button[type='submit']"},
	},
	Progress: Progress{
		Container: Selector{".ashby-application-form-container"},
	},
	EEOSection: Selector{
		".ashby-application-form-survey",
		"[data-testid='eeoc-survey']",
	},
	Errors: Selector{
		".ashby-application-form-field-error",
		"[role='alert']",
	},
}

// genericSet is deliberately permissive: it must produce something on any page.
var genericSet = Set{
	Platform: Generic,
	Form: Selector{
		"form",
		"[role='form']",
		"main",
		"body",
	},
	QuestionBlock: Selector{
		"fieldset",
		".form-group",
		".field",
		".form-field",
		"[class*='question']",
	},
	Label: Selector{
		"legend",
		"label",
		"[class*='label']",
	},
	ControlLabel: Selector{
		"label",
	},
	Required: Selector{
		"[required]",
		"[aria-required='true']",
		".required",
		".asterisk",
	},
	Inputs: Inputs{
		Text:     Selector{"input[type='text']", "input[type='email']", "input[type='tel']", "input[type='url']", "input[type='number']", "input:not([type])"},
		Textarea: Selector{"textarea"},
		Select:   Selector{"select"},
		Checkbox: Selector{"input[type='checkbox']"},
		Radio:    Selector{"input[type='radio']"},
		File:     Selector{"input[type='file']"},
		Option:   Selector{"option", "[role='option']"},
	},
	Fields: map[FieldName]Selector{
		FieldFirstName: {"input[autocomplete='given-name']", "input[name*='first_name']", "input[name*='firstName']", "input[name*='firstname']"},
		FieldLastName:  {"input[autocomplete='family-name']", "input[name*='last_name']", "input[name*='lastName']", "input[name*='lastname']"},
		FieldEmail:     {"input[type='email']", "input[name*='email']"},
		FieldPhone:     {"input[type='tel']", "input[name*='phone']"},
		FieldResume:    {"input[type='file'][name*='resume']", "input[type='file']"},
	},
	Navigation: Navigation{
		Next:     Selector{"button[class*='next']", "button[type='submit']"},
		Previous: Selector{"button[class*='back']", "button[class*='prev']"},
		Submit:   Selector{"button[type='submit']", "input[type='submit']"},
	},
	Progress: Progress{
		Container: Selector{"[role='progressbar']", "progress", "[class*='progress']"},
	},
	EEOSection: Selector{
		"[class*='eeo']",
		"[id*='eeo']",
		"[class*='demographic']",
	},
	Errors: Selector{
		"[role='alert']",
		".error",
		"[aria-invalid='true']",
	},
}
