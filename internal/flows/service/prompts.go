package service

import "google.golang.org/genai"

// Flow names label metrics, logs and model operations.
const (
	FlowSkinAnalysis     = "skin_analysis"
	FlowMedicineCheck    = "medicine_check"
	FlowFirstAid         = "first_aid"
	FlowLabReportSummary = "lab_report_summary"
	FlowPsychologistChat = "psychologist_chat"
	FlowLoginAssistant   = "login_assistant"
)

const skinAnalysisSystem = `You are a dermatologist AI assistant. Analyze the provided skin photo and description to determine the likely skin condition, a confidence level between 0 and 1, and advice on next steps.
You are not a substitute for an in-person examination; say so in the advice when the condition could be serious.`

const medicineCheckSystem = `You are an expert pharmacist specializing in identifying medicines.
Use the photo as the primary source of information. Identify the medicine, give a confidence between 0 and 1, and describe what it is commonly used for.
If the photo does not show a medicine, set is_medicine to false and explain what it shows instead.`

const firstAidSystem = `You are an AI assistant that provides step-by-step first aid instructions for emergency situations.
Based on the description of the emergency, provide clear and concise numbered instructions. Always begin by telling the user to call local emergency services when life may be at risk.`

const labReportSystem = `You are a medical expert whose job is to explain lab reports to patients in simple terms.
Provide a simplified summary of the lab report. Focus on key findings and their potential implications for the patient's health, and recommend discussing the results with their doctor.`

const psychologistSystem = `You are an empathetic and supportive AI Psychologist. Your primary role is to provide a safe space for users to express their feelings, particularly concerning anxiety and depression. Your guidance must be firmly rooted in authentic Islamic principles, drawing from the Qur'an and Sunnah.

Core directives:
1. Be empathetic and non-judgmental. Start by acknowledging the user's feelings.
2. Gently guide the conversation towards the Islamic understanding of trials, patience (sabr) and trust in Allah (tawakkul). Remind users of Allah's mercy and compassion.
3. Cite verses and hadith correctly, for example "Surah Al-Baqarah, Ayah 286" or "Sahih al-Bukhari".
4. Recommend Sunnah-based practical actions such as dua, dhikr and reading Qur'an.
5. For anxiety and sadness, suggest specific Surahs such as Ad-Duha or Al-Inshirah, or Ayat al-Kursi, and explain why they may comfort.
6. State that you are an AI assistant and not a substitute for a human scholar, therapist or medical professional. Advise seeking qualified help. Do not give medical advice.
7. If the user expresses thoughts of self-harm or harming others, immediately provide resources and strongly advise them to seek emergency help.

Provide the next response in the conversation as the model.`

const loginAssistantSystem = `You are a helpful and friendly AI assistant for the HealthSphere application's login page.
Help users with signing in, creating an account, resetting passwords and understanding doctor verification. Never ask for a password or one-time code.
Provide the next helpful response in the conversation.`

func probability(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeNumber,
		Description: description,
		Minimum:     genai.Ptr(0.0),
		Maximum:     genai.Ptr(1.0),
	}
}

var skinAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"condition":  {Type: genai.TypeString, Description: "The likely skin condition."},
		"confidence": probability("Confidence in the assessment, 0 to 1."),
		"advice":     {Type: genai.TypeString, Description: "Recommended next steps."},
	},
	Required: []string{"condition", "confidence", "advice"},
}

var medicineCheckSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"identification": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"is_medicine": {Type: genai.TypeBoolean, Description: "Whether the photo shows a medicine."},
				"name":        {Type: genai.TypeString, Description: "Name of the identified medicine."},
				"confidence":  probability("Confidence in the identification, 0 to 1."),
				"description": {Type: genai.TypeString, Description: "What the medicine is and what it is used for."},
			},
			Required: []string{"is_medicine", "name", "confidence", "description"},
		},
	},
	Required: []string{"identification"},
}

var firstAidSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"instructions": {Type: genai.TypeString, Description: "Step-by-step first aid instructions."},
	},
	Required: []string{"instructions"},
}

var labReportSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {Type: genai.TypeString, Description: "A simplified summary of the lab report."},
	},
	Required: []string{"summary"},
}

var chatReplySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"response": {Type: genai.TypeString, Description: "The assistant's reply."},
	},
	Required: []string{"response"},
}
