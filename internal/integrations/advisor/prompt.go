package advisor

import (
	"fmt"
	"strings"

	"github.com/Dan9191/budget-advisor/internal/models"
)

const promptIntro = `You are an expert financial advisor AI. You provide personalized, practical financial advice based on the user's budget data.`

const promptGuidelines = `Guidelines:
1. Always reference their specific financial situation when giving advice
2. Be encouraging but realistic about their financial position
3. Provide actionable steps they can take immediately
4. Consider their risk tolerance based on their emergency fund and disposable income
5. Suggest specific dollar amounts or percentages when appropriate
6. Keep responses conversational but professional`

const promptNoBudget = `The user hasn't provided budget data yet. Encourage them to share their financial information for personalized advice.`

const promptAlways = `Always:
- Keep responses concise but comprehensive (2-3 paragraphs max)
- Use encouraging language while being realistic
- Provide specific, actionable advice
- Ask follow-up questions to better understand their goals
- Focus on practical steps they can implement today`

// SystemPrompt builds the system message, embedding the budget when present
func SystemPrompt(budget *models.BudgetSnapshot) string {
	var b strings.Builder
	b.WriteString(promptIntro)
	b.WriteString("\n\n")
	if budget == nil {
		b.WriteString(promptNoBudget)
	} else {
		fmt.Fprintf(&b, "User's Financial Profile:\n")
		fmt.Fprintf(&b, "- Monthly Income: $%s\n", budget.MonthlyIncome.StringFixed(2))
		fmt.Fprintf(&b, "- Monthly Expenses: $%s\n", budget.MonthlyExpenses.StringFixed(2))
		fmt.Fprintf(&b, "- Total Savings: $%s\n", budget.Savings.StringFixed(2))
		fmt.Fprintf(&b, "- Emergency Fund: $%s\n", budget.EmergencyFund.StringFixed(2))
		fmt.Fprintf(&b, "- Monthly Disposable Income: $%s\n\n", budget.DisposableIncome().StringFixed(2))
		b.WriteString(promptGuidelines)
	}
	b.WriteString("\n\n")
	b.WriteString(promptAlways)
	return b.String()
}
